// Package transcript records one chat session and writes it to disk on request.
package transcript

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	playground "github.com/haowjy/genai-playground-go"
)

var (
	// ErrTranscriptNotFound indicates the transcript file does not exist.
	ErrTranscriptNotFound = errors.New("transcript: file not found")

	// ErrTranscriptCorrupt indicates the transcript file could not be decoded.
	ErrTranscriptCorrupt = errors.New("transcript: file is corrupt")
)

// Entry is one message of the session.
type Entry struct {
	Role      playground.Role
	Text      string
	Timestamp time.Time
}

// Transcript is an append-only list of entries for one session.
// Starting a new session means creating a new Transcript.
type Transcript struct {
	mu      sync.RWMutex
	id      uuid.UUID
	started time.Time
	entries []Entry
	now     func() time.Time
}

// Option configures a Transcript.
type Option func(*Transcript)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Transcript) {
		if now != nil {
			t.now = now
		}
	}
}

// New starts an empty session with a fresh random ID.
func New(opts ...Option) *Transcript {
	t := &Transcript{
		id:  uuid.New(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.started = t.now()
	return t
}

// ID returns the session identifier.
func (t *Transcript) ID() string {
	return t.id.String()
}

// Started returns when the session began.
func (t *Transcript) Started() time.Time {
	return t.started
}

// Append adds one entry. Blank text and roles other than user and
// assistant are refused, so every saved transcript loads again.
func (t *Transcript) Append(role playground.Role, text string) error {
	if err := checkEntry(role, text); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, Entry{Role: role, Text: text, Timestamp: t.now()})
	return nil
}

// AppendTurn adds a user message followed by the assistant reply.
// Neither is added if either is refused.
func (t *Transcript) AppendTurn(user, assistant string) error {
	if err := checkEntry(playground.RoleUser, user); err != nil {
		return err
	}
	if err := checkEntry(playground.RoleAssistant, assistant); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	ts := t.now()
	t.entries = append(t.entries,
		Entry{Role: playground.RoleUser, Text: user, Timestamp: ts},
		Entry{Role: playground.RoleAssistant, Text: assistant, Timestamp: ts},
	)
	return nil
}

func checkEntry(role playground.Role, text string) error {
	if role != playground.RoleUser && role != playground.RoleAssistant {
		return fmt.Errorf("transcript: role %q: %w", role, playground.ErrInvalidRequest)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("transcript: %s entry: %w", role, playground.ErrEmptyInput)
	}
	return nil
}

// Entries returns a copy of the entries in order.
func (t *Transcript) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Turns returns the number of user entries.
func (t *Transcript) Turns() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, e := range t.entries {
		if e.Role == playground.RoleUser {
			n++
		}
	}
	return n
}

// Messages returns the entries as request history.
func (t *Transcript) Messages() []playground.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	msgs := make([]playground.Message, len(t.entries))
	for i, e := range t.entries {
		msgs[i] = playground.Message{Role: e.Role, Text: e.Text}
	}
	return msgs
}
