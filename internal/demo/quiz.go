package demo

import (
	"fmt"

	"navigator/pkg/nav"
)

type question struct {
	text    string
	choices [4]string
	answer  string
}

var questions = []question{
	{
		text:    "What is the first letter of the alphabet?",
		choices: [4]string{"a", "b", "c", "d"},
		answer:  "a",
	},
	{
		text:    "What is your favorite programming language?",
		choices: [4]string{"Malbolge", "Go", "HTML", "I don't code"},
		answer:  "b",
	},
	{
		text:    "Hello there!",
		choices: [4]string{"Hello!", "Hi!", "Hey!", "General Kenobi."},
		answer:  "d",
	},
	{
		text:    "What sound does a duck make?",
		choices: [4]string{"Quack", "Beep", "Ducks aren't real", "Whatever the script says."},
		answer:  "a",
	},
	{
		text:    "Which input is consumed first after Execute(\"x\", \"y\")?",
		choices: [4]string{"y", "Neither", "x", "Both at once"},
		answer:  "c",
	},
}

var quizKeys = [4]string{"a", "b", "c", "d"}

// QuizAnswers are the correct answers in order.
func QuizAnswers() []string {
	answers := make([]string, len(questions))
	for i, q := range questions {
		answers[i] = q.answer
	}
	return answers
}

func init() {
	register(Demo{
		Name:        "quiz",
		Description: "Five multiple choice questions; can answer itself.",
		Run:         runQuiz,
	})
}

func runQuiz(c *nav.Context) error {
	err := c.Run(nav.Pick("Would you like to take the quiz?",
		nav.Choice("yes", say(c, "Very well.")),
		nav.Choice("no", func() error {
			c.Execute(QuizAnswers()...)
			return nil
		}).Describe("Automatically answers the quiz for you."),
		nav.Choice("a", func() error {
			c.Execute("a", "a", "a", "a", "a")
			return nil
		}).Describe("Answers 'a' for every question."),
	))
	if err != nil {
		return err
	}

	score := 0
	for _, q := range questions {
		check := func(key string) nav.Handler {
			return func() error {
				if key == q.answer {
					score++
					return c.Prompt("Correct!")
				}
				return c.Prompt("Wrong.")
			}
		}

		options := make([]nav.Option, len(quizKeys))
		for i, key := range quizKeys {
			options[i] = nav.Choice(key, check(key)).Describe(q.choices[i])
		}
		if err := c.Run(nav.Pick(q.text, options...)); err != nil {
			return err
		}
	}

	return c.Prompt(fmt.Sprintf("Quiz finished!\nYou got %d out of %d questions right.", score, len(questions)))
}
