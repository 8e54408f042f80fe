// Package console renders menus and reads answers for the interactive demos.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	playground "github.com/haowjy/genai-playground-go"
)

const ruleWidth = 50

// Console reads lines from in and writes styled output to out.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	styles Styles
}

// New returns a Console. Styling follows out's terminal capabilities.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		styles: NewStyles(lipgloss.NewRenderer(out)),
	}
}

// Styles returns the styles in use.
func (c *Console) Styles() Styles {
	return c.styles
}

// Writer returns the output writer.
func (c *Console) Writer() io.Writer {
	return c.out
}

func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Rule prints a horizontal line.
func (c *Console) Rule() {
	fmt.Fprintln(c.out, c.styles.Subtle.Render(strings.Repeat("=", ruleWidth)))
}

// Banner prints a title between two rules, with optional subtitle lines.
func (c *Console) Banner(title string, lines ...string) {
	fmt.Fprintln(c.out, c.styles.Title.Render(title))
	c.Rule()
	for _, l := range lines {
		fmt.Fprintln(c.out, c.styles.Subtle.Render(l))
	}
	if len(lines) > 0 {
		c.Rule()
	}
}

// Section prints a heading.
func (c *Console) Section(title string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.Title.Render(title))
	fmt.Fprintln(c.out, c.styles.Subtle.Render(strings.Repeat("-", ruleWidth)))
}

func (c *Console) Success(msg string) {
	fmt.Fprintln(c.out, c.styles.Success.Render("✅ "+msg))
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.out, c.styles.Error.Render("❌ "+msg))
}

func (c *Console) Warn(msg string) {
	fmt.Fprintln(c.out, c.styles.Warn.Render("⚠️  "+msg))
}

func (c *Console) Info(msg string) {
	fmt.Fprintln(c.out, c.styles.Subtle.Render(msg))
}

// Box prints text inside a rounded border.
func (c *Console) Box(text string) {
	fmt.Fprintln(c.out, c.styles.Box.Render(text))
}

// Outcome prints a generation result: the text on success, the styled
// diagnostic otherwise.
func (c *Console) Outcome(o playground.Outcome) {
	if o.Succeeded() {
		fmt.Fprintln(c.out, o.Text)
		return
	}
	fmt.Fprintln(c.out, c.styles.Error.Render(playground.FormatForUser(o)))
	if hint := o.Hint(); hint != "" {
		fmt.Fprintln(c.out, c.styles.Subtle.Render("   "+hint))
	}
}

// Ask prints prompt and returns the next line, trimmed.
// It returns io.EOF once input is exhausted and nothing was read.
func (c *Console) Ask(prompt string) (string, error) {
	// Leading newlines stay outside the style so they are not padded.
	text := strings.TrimLeft(prompt, "\n")
	fmt.Fprint(c.out, prompt[:len(prompt)-len(text)], c.styles.Prompt.Render(text))
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		fmt.Fprintln(c.out)
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskDefault is Ask, returning def for an empty answer.
func (c *Console) AskDefault(prompt, def string) (string, error) {
	answer, err := c.Ask(prompt)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// AskInt reads an integer. Empty or unparsable answers give def;
// the result is clamped to [min, max].
func (c *Console) AskInt(prompt string, def, min, max int) (int, error) {
	answer, err := c.Ask(prompt)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(answer)
	if answer == "" || convErr != nil {
		n = def
	}
	if n < min {
		n = min
	}
	if n > max {
		n = max
	}
	return n, nil
}

// Confirm asks a y/N question. Only "y" and "yes" count as yes.
func (c *Console) Confirm(prompt string) (bool, error) {
	answer, err := c.Ask(prompt + " (y/N): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
