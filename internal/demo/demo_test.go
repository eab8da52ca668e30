package demo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navigator/internal/port"
	"navigator/internal/trace"
	"navigator/pkg/nav"
)

func TestRegistry(t *testing.T) {
	var names []string
	for _, d := range All() {
		names = append(names, d.Name)
		assert.NotEmpty(t, d.Description)
	}
	assert.Equal(t, []string{"flow", "quiz", "sandbox"}, names)

	_, ok := Lookup("quiz")
	assert.True(t, ok)
	_, ok = Lookup("missing")
	assert.False(t, ok)
}

func TestQuizShownAnswers(t *testing.T) {
	buf := port.NewBuffer()
	c := nav.New(nav.WithPort(buf))
	c.Execute("yes")
	for _, a := range QuizAnswers() {
		c.Execute(nav.Shown(a))
	}

	require.NoError(t, runQuiz(c))
	out := buf.Output()
	assert.Equal(t, 5, strings.Count(out, "> Correct!"))
	assert.Contains(t, out, "> Quiz finished!\n> You got 5 out of 5 questions right.\n")
	assert.NotContains(t, out, "Very well.")
	assert.Zero(t, buf.Reads())
}

func TestQuizAnswersItself(t *testing.T) {
	buf := port.NewBuffer()
	c := nav.New(nav.WithPort(buf))
	c.Execute("a")

	require.NoError(t, runQuiz(c))
	assert.Zero(t, c.Pending())
	assert.Zero(t, buf.Reads())
}

func TestQuizLive(t *testing.T) {
	buf := port.NewBuffer("yes", "", "a", "", "a", "", "a", "", "a", "", "a", "", "")
	c := nav.New(nav.WithPort(buf))

	require.NoError(t, runQuiz(c))
	assert.Contains(t, buf.Output(), "You got 2 out of 5 questions right.")
	assert.Zero(t, buf.Remaining())
}

func TestQuizRejectsBadScript(t *testing.T) {
	c := nav.New(nav.WithPort(port.NewBuffer()))
	c.Execute("yes", "e")

	err := runQuiz(c)
	ae, ok := nav.AsAutomationError(err)
	require.True(t, ok)
	assert.Equal(t, "e", ae.Command)
}

func TestFlowScripted(t *testing.T) {
	rec := trace.NewRecorder()
	buf := port.NewBuffer("")
	c := nav.New(nav.WithPort(buf), nav.WithObserver(rec))
	c.Execute("test", "cancel", "back", "print", "xd", "say", "a number", "42", "back")

	require.NoError(t, runFlow(c))
	assert.Equal(t, []string{
		"Welcome!",
		"Testing.",
		"Print what?",
		"Print what?",
		"Hello there",
		"What do you want me to say?",
	}, rec.Path())
	assert.Equal(t, []string{"print"}, rec.Keys("Welcome!", "Print what?"))
	assert.Zero(t, c.Pending())
	// Only the welcome prompt, shown before any input, waits for Enter.
	assert.Equal(t, 1, buf.Reads())
}

func TestFlowScriptedNumberMustParse(t *testing.T) {
	c := nav.New(nav.WithPort(port.NewBuffer("")))
	c.Execute("back", "say", "a number", "forty-two")

	err := runFlow(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forty-two")
}

func TestSandbox(t *testing.T) {
	buf := port.NewBuffer()
	c := nav.New(nav.WithPort(buf))
	c.Execute("auto", "back", "back")

	require.NoError(t, runSandbox(c))
	assert.Zero(t, c.Pending())
	assert.Zero(t, buf.Reads())
}
