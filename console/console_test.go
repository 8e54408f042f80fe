package console

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	playground "github.com/haowjy/genai-playground-go"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(strings.NewReader(input), out), out
}

func TestConsole_Ask(t *testing.T) {
	c, out := newTestConsole("  hello world  \nlast")

	got, err := c.Ask("you: ")
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Contains(t, out.String(), "you: ")

	got, err = c.Ask("you: ")
	require.NoError(t, err)
	assert.Equal(t, "last", got, "final line without newline is still returned")

	_, err = c.Ask("you: ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestConsole_AskDefault(t *testing.T) {
	c, _ := newTestConsole("\nFrench\n")

	got, err := c.AskDefault("language: ", "Chinese")
	require.NoError(t, err)
	assert.Equal(t, "Chinese", got)

	got, err = c.AskDefault("language: ", "Chinese")
	require.NoError(t, err)
	assert.Equal(t, "French", got)
}

func TestConsole_AskInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"3\n", 3},
		{"\n", 2},
		{"many\n", 2},
		{"0\n", 1},
		{"99\n", 5},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			c, _ := newTestConsole(tt.input)
			got, err := c.AskInt("count: ", 2, 1, 5)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConsole_Confirm(t *testing.T) {
	c, out := newTestConsole("y\nYES\nn\n\n")

	for _, want := range []bool{true, true, false, false} {
		got, err := c.Confirm("save?")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Contains(t, out.String(), "save? (y/N): ")
}

func TestConsole_Choose(t *testing.T) {
	c, out := newTestConsole("2\n")
	menu := Menu{
		Title: "Pick one",
		Items: []MenuItem{
			{Key: "1", Label: "Translate"},
			{Key: "2", Label: "Summarize"},
			{Key: "0", Label: "Exit"},
		},
	}

	got, err := c.Choose(menu, "choice: ")
	require.NoError(t, err)
	assert.Equal(t, "2", got)
	assert.True(t, menu.Has(got))
	assert.False(t, menu.Has("7"))

	text := out.String()
	assert.Contains(t, text, "Pick one")
	assert.Contains(t, text, "Translate")
	assert.Less(t, strings.Index(text, "Translate"), strings.Index(text, "Exit"))
}

func TestConsole_Outcome(t *testing.T) {
	c, out := newTestConsole("")

	c.Outcome(playground.Outcome{Kind: playground.OutcomeSuccess, Text: "generated"})
	c.Outcome(playground.Outcome{Kind: playground.OutcomeBlockedBySafety})

	text := out.String()
	assert.Contains(t, text, "generated\n")
	assert.Contains(t, text, playground.MarkerSafety)

	out.Reset()
	c.Outcome(playground.ClassifyOutcome(nil, playground.NewProviderError("gemini", 429, "quota")))
	assert.Contains(t, out.String(), playground.MarkerTransport)
	assert.Contains(t, out.String(), "try again")
}

func TestConsole_Messages(t *testing.T) {
	c, out := newTestConsole("")

	c.Banner("Quickstart", "tip one")
	c.Success("saved")
	c.Error("failed")
	c.Box("boxed")

	text := out.String()
	for _, s := range []string{"Quickstart", "tip one", "saved", "failed", "boxed"} {
		assert.Contains(t, text, s)
	}
}
