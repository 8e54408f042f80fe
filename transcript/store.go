package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	playground "github.com/haowjy/genai-playground-go"
)

const rule = "=================================================="

// record is one question/answer pair in the JSON file.
type record struct {
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Assistant string `json:"assistant,omitempty"`
}

// JSONFileName returns chat_history_YYYYMMDD_HHMMSS.json.
func JSONFileName(now time.Time) string {
	return playground.OutputFileName("chat_history", "json", now)
}

// TextFileName returns conversation_YYYYMMDD_HHMMSS.txt.
func TextFileName(now time.Time) string {
	return playground.OutputFileName("conversation", "txt", now)
}

// PromptsFileName returns image_prompts_YYYYMMDD_HHMMSS.txt.
func PromptsFileName(now time.Time) string {
	return playground.OutputFileName("image_prompts", "txt", now)
}

// SaveJSON writes the transcript as a JSON array of {timestamp, user, assistant}.
// A user entry with no reply is written without the assistant field.
func (t *Transcript) SaveJSON(path string) error {
	records := toRecords(t.Entries())

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

func toRecords(entries []Entry) []record {
	records := make([]record, 0, len(entries))
	for _, e := range entries {
		switch e.Role {
		case playground.RoleUser:
			records = append(records, record{
				Timestamp: e.Timestamp.Format(time.RFC3339),
				User:      e.Text,
			})
		case playground.RoleAssistant:
			n := len(records)
			if n > 0 && records[n-1].Assistant == "" {
				records[n-1].Assistant = e.Text
				continue
			}
			records = append(records, record{
				Timestamp: e.Timestamp.Format(time.RFC3339),
				Assistant: e.Text,
			})
		}
	}
	return records
}

// LoadJSON reads a file written by SaveJSON into a new session.
// The loaded session gets a fresh ID.
func LoadJSON(path string, opts ...Option) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrTranscriptNotFound)
		}
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrTranscriptCorrupt, err)
	}

	t := New(opts...)
	for i, r := range records {
		ts, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w: bad timestamp %q", path, i, ErrTranscriptCorrupt, r.Timestamp)
		}
		if r.User == "" && r.Assistant == "" {
			return nil, fmt.Errorf("%s: record %d: %w: empty record", path, i, ErrTranscriptCorrupt)
		}
		if r.User != "" {
			t.entries = append(t.entries, Entry{Role: playground.RoleUser, Text: r.User, Timestamp: ts})
		}
		if r.Assistant != "" {
			t.entries = append(t.entries, Entry{Role: playground.RoleAssistant, Text: r.Assistant, Timestamp: ts})
		}
	}
	return t, nil
}

// WriteText renders a plain text transcript with a header.
func (t *Transcript) WriteText(w io.Writer, title string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "Time: %s\n", t.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Turns: %d\n", t.Turns())
	fmt.Fprintf(&b, "Session: %s\n", t.ID())
	fmt.Fprintf(&b, "%s\n\n", rule)

	for _, e := range t.Entries() {
		label := "User"
		if e.Role == playground.RoleAssistant {
			label = "Assistant"
		}
		fmt.Fprintf(&b, "%s:\n%s\n\n", label, e.Text)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// SaveText writes the WriteText rendering to path.
func (t *Transcript) SaveText(path, title string) error {
	var b strings.Builder
	if err := t.WriteText(&b, title); err != nil {
		return err
	}
	return writeFile(path, []byte(b.String()))
}

// Section is one titled block of a saved prompt set.
type Section struct {
	Title string
	Body  string
}

// SavePrompts writes sections in order under a header.
func SavePrompts(path, title string, sections []Section, now time.Time) error {
	if len(sections) == 0 {
		return fmt.Errorf("prompt set: %w", playground.ErrEmptyInput)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", title, rule)
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))
	for _, s := range sections {
		fmt.Fprintf(&b, "%s:\n%s\n\n", s.Title, s.Body)
	}
	return writeFile(path, []byte(b.String()))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
