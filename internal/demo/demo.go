// Package demo holds small menu trees that exercise the navigator engine.
package demo

import (
	"sort"

	"navigator/pkg/nav"
)

// Demo is a runnable menu tree.
type Demo struct {
	Name        string
	Description string
	Run         func(c *nav.Context) error
}

var registry = map[string]Demo{}

func register(d Demo) {
	registry[d.Name] = d
}

// All returns every demo ordered by name.
func All() []Demo {
	demos := make([]Demo, 0, len(registry))
	for _, d := range registry {
		demos = append(demos, d)
	}
	sort.Slice(demos, func(i, j int) bool { return demos[i].Name < demos[j].Name })
	return demos
}

// Lookup finds a demo by name.
func Lookup(name string) (Demo, bool) {
	d, ok := registry[name]
	return d, ok
}

// say returns a handler that prompts message.
func say(c *nav.Context, message string) nav.Handler {
	return func() error { return c.Prompt(message) }
}
