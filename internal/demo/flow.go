package demo

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"

	"navigator/pkg/nav"
)

const magicNumber = 5

func init() {
	register(Demo{
		Name:        "flow",
		Description: "Nested navigation menus with scripted shortcuts.",
		Run:         runFlow,
	})
	register(Demo{
		Name:        "sandbox",
		Description: "Queues its own answers, then runs the flow demo.",
		Run:         runSandbox,
	})
}

func runFlow(c *nav.Context) error {
	if err := c.Prompt("Welcome to the program!"); err != nil {
		return err
	}

	testMenu := nav.Nav("Testing.",
		nav.Choice("cancel", say(c, "ok")),
		nav.Choice("back", say(c, "Backing out...")).Describe("Goes back"),
	)
	printMenu := nav.Pick("Print what?",
		nav.Choice("yes", say(c, "no")),
		nav.Choice("no", say(c, "yes")),
		nav.Choice("xd", func() error {
			c.Execute("print", "no", "", "back")
			return nil
		}),
		nav.Choice("loop", func() error {
			if err := c.Prompt("you will never escape."); err != nil {
				return err
			}
			c.Execute("print", "loop")
			return nil
		}).Describe("do not."),
		nav.Choice("quit", func() error {
			c.Execute("back", "back")
			return nil
		}).Describe("quit program."),
	)

	err := c.Run(nav.Nav("Welcome!",
		nav.Choice("test", func() error { return c.Run(testMenu) }),
		nav.Choice("", say(c, "What?")),
		nav.Choice("print", func() error { return c.Run(printMenu) }).Describe("prints stuff"),
	))
	if err != nil {
		return err
	}

	sayWhat := nav.Pick("What do you want me to say?",
		nav.Choice("nothing", say(c, "ok")),
		nav.Choice("h", say(c, "h")),
		nav.Choice("a number", func() error { return askNumber(c) }),
	)
	err = c.Run(nav.Nav("Hello there",
		nav.Choice("hi", say(c, "Hello!")).Describe(fmt.Sprintf("idk the num is %d", magicNumber)),
		nav.Choice("hello", say(c, "Hi")).Describe("makes response"),
		nav.Choice("general kenobi", say(c, "i don't remember how the rest of the meme goes")).Describe("reference"),
		nav.Choice("say", func() error { return c.Run(sayWhat) }).Describe("says stuff"),
	))
	if err != nil {
		return err
	}

	return c.Prompt("Goodbye!")
}

func askNumber(c *nav.Context) error {
	for {
		text, err := c.Input("Enter a number.")
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(text)
		if err == nil {
			return c.Prompt(strconv.Itoa(n))
		}
		if c.Last().Source == nav.Automated {
			return errors.Wrapf(err, "scripted number %q", text)
		}
		if err := c.Prompt("That is not a number."); err != nil {
			return err
		}
	}
}

func runSandbox(c *nav.Context) error {
	err := c.Run(nav.Pick("pick one",
		nav.Choice("auto", func() error {
			c.Execute("a", "c", "b")
			return nil
		}),
	))
	if err != nil {
		return err
	}

	for i := 0; i < 3; i++ {
		err := c.Run(nav.Pick("pick one",
			nav.Choice("a", say(c, "a")),
			nav.Choice("b", say(c, "b")),
			nav.Choice("c", say(c, "c")),
		))
		if err != nil {
			return err
		}
	}

	return runFlow(c)
}
