package console

import (
	"fmt"
	"strings"
)

// MenuItem is one numbered choice.
type MenuItem struct {
	Key   string
	Label string
}

// Menu is a titled list of choices.
type Menu struct {
	Title string
	Items []MenuItem
}

// Has reports whether key is one of the menu's keys.
func (m Menu) Has(key string) bool {
	for _, item := range m.Items {
		if item.Key == key {
			return true
		}
	}
	return false
}

// Render returns the menu as text.
func (c *Console) Render(m Menu) string {
	var b strings.Builder
	if m.Title != "" {
		b.WriteString(c.styles.Title.Render(m.Title))
		b.WriteString("\n")
	}
	for _, item := range m.Items {
		fmt.Fprintf(&b, "%s. %s\n", c.styles.Key.Render(item.Key), item.Label)
	}
	return b.String()
}

// Choose prints the menu and reads a choice. Unknown answers are returned
// as typed; callers decide how to report them.
func (c *Console) Choose(m Menu, prompt string) (string, error) {
	fmt.Fprintln(c.out)
	fmt.Fprint(c.out, c.Render(m))
	return c.Ask(prompt)
}
