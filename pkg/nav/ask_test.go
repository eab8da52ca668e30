package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmScripted(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   Answer
		want  bool
	}{
		{name: "yes", input: "yes", def: NoDefault, want: true},
		{name: "upper case y", input: "Y", def: DefaultNo, want: true},
		{name: "no", input: " No ", def: DefaultYes, want: false},
		{name: "default yes", input: "", def: DefaultYes, want: true},
		{name: "default no", input: "", def: DefaultNo, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, buf := newTestContext()
			c.Execute(tt.input)

			got, err := c.Confirm("Continue?", tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Zero(t, buf.Reads())
		})
	}
}

func TestConfirmScriptedGarbageFails(t *testing.T) {
	c, _ := newTestContext()
	c.Execute("")

	_, err := c.Confirm("Continue?", NoDefault)
	ae, ok := AsAutomationError(err)
	require.True(t, ok)
	assert.Contains(t, ae.Reason, "yes/no")
}

func TestConfirmLiveRetries(t *testing.T) {
	c, buf := newTestContext("maybe", "", "n")

	got, err := c.Confirm("Continue?", DefaultYes)
	require.NoError(t, err)
	assert.False(t, got)
	assert.Contains(t, buf.Output(), "> Continue?\n=[Y/n]> ")
	assert.Contains(t, buf.Output(), "> Please answer yes or no.")
}

func TestInput(t *testing.T) {
	c, _ := newTestContext(" typed ")
	c.Execute("  scripted value ")

	v, err := c.Input("Name?")
	require.NoError(t, err)
	assert.Equal(t, "scripted value", v)

	v, err = c.Input("Name?")
	require.NoError(t, err)
	assert.Equal(t, "typed", v)
	assert.Equal(t, User, c.Last().Source)
}
