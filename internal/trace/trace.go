// Package trace records the path a session takes through nested menus as a
// directed graph of menu titles.
package trace

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dominikbraun/graph"

	"navigator/internal/log"
	"navigator/pkg/nav"
)

const untitled = "(untitled)"

// enterKey labels edges taken with the empty input.
const enterKey = "(enter)"

type frame struct {
	title string
	key   string
}

// Recorder is a nav.Observer that builds the menu graph. An edge parent ->
// child is labelled with every key that led from one to the other.
type Recorder struct {
	g      graph.Graph[string, string]
	stack  []frame
	path   []string
	visits map[string]int
	keys   map[[2]string]map[string]struct{}
}

func NewRecorder() *Recorder {
	return &Recorder{
		g:      graph.New(graph.StringHash, graph.Directed()),
		visits: make(map[string]int),
		keys:   make(map[[2]string]map[string]struct{}),
	}
}

func vertexName(title string) string {
	if title == "" {
		return untitled
	}
	return title
}

func (r *Recorder) MenuEntered(title string) {
	name := vertexName(title)
	if err := r.g.AddVertex(name, graph.VertexAttribute("shape", "box")); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		log.Warn("trace: add vertex", "title", name, "error", err)
	}
	r.visits[name]++
	r.path = append(r.path, name)

	if n := len(r.stack); n > 0 && r.stack[n-1].key != "" {
		parent := r.stack[n-1]
		r.link(parent.title, name, parent.key)
	}
	r.stack = append(r.stack, frame{title: name})
}

func (r *Recorder) OptionSelected(title, key string) {
	if key == "" {
		key = enterKey
	}
	if n := len(r.stack); n > 0 {
		r.stack[n-1].key = key
	}
}

func (r *Recorder) CommandResolved(nav.Command) {}

func (r *Recorder) CommandAccepted(nav.Command) {}

func (r *Recorder) MenuExited(title string) {
	if n := len(r.stack); n > 0 {
		r.stack = r.stack[:n-1]
	}
}

func (r *Recorder) link(from, to, key string) {
	pair := [2]string{from, to}
	set, ok := r.keys[pair]
	if !ok {
		set = make(map[string]struct{})
		r.keys[pair] = set
	}
	set[key] = struct{}{}
	label := graph.EdgeAttribute("label", joinKeys(set))

	err := r.g.AddEdge(from, to, label)
	if errors.Is(err, graph.ErrEdgeAlreadyExists) {
		err = r.g.UpdateEdge(from, to, label)
	}
	if err != nil {
		log.Warn("trace: add edge", "from", from, "to", to, "error", err)
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinKeys(set map[string]struct{}) string {
	return strings.Join(sortedKeys(set), ", ")
}

// Path returns the titles of every menu entered, in order.
func (r *Recorder) Path() []string {
	return append([]string(nil), r.path...)
}

// Visits reports how many times the menu with this title was entered.
func (r *Recorder) Visits(title string) int {
	return r.visits[vertexName(title)]
}

// Keys returns the sorted keys that led from one menu to another.
func (r *Recorder) Keys(from, to string) []string {
	set := r.keys[[2]string{vertexName(from), vertexName(to)}]
	if len(set) == 0 {
		return nil
	}
	return sortedKeys(set)
}

// Graph returns the underlying graph. Callers must not modify it while the
// session is still running.
func (r *Recorder) Graph() graph.Graph[string, string] {
	return r.g
}
