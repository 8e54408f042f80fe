// Package chat keeps a multi-turn conversation on top of the Prompt Adapter.
package chat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	playground "github.com/haowjy/genai-playground-go"
	"github.com/haowjy/genai-playground-go/transcript"
)

// TranscriptTitle heads saved text transcripts.
const TranscriptTitle = "Chat transcript"

// Session is one conversation. Every Send resends the whole history;
// the provider keeps no state between calls.
type Session struct {
	adapter    *playground.Adapter
	system     string
	transcript *transcript.Transcript
	trOpts     []transcript.Option
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithSystem sets the role instruction sent with every turn.
func WithSystem(system string) Option {
	return func(s *Session) {
		s.system = strings.TrimSpace(system)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now for transcripts and file names.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
			s.trOpts = append(s.trOpts, transcript.WithClock(now))
		}
	}
}

// NewSession starts an empty conversation.
func NewSession(adapter *playground.Adapter, opts ...Option) *Session {
	s := &Session{
		adapter: adapter,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.transcript = transcript.New(s.trOpts...)
	return s
}

// System returns the role instruction, or "" if none.
func (s *Session) System() string {
	return s.system
}

// Transcript returns the current session transcript.
func (s *Session) Transcript() *transcript.Transcript {
	return s.transcript
}

// Send appends text to the history and asks for a reply.
// Only a successful reply is recorded; on any other outcome the
// history is left as it was.
func (s *Session) Send(ctx context.Context, text string) playground.Outcome {
	if strings.TrimSpace(text) == "" {
		return playground.RejectedOutcome(fmt.Errorf("message: %w", playground.ErrEmptyInput))
	}

	messages := append(s.transcript.Messages(), playground.Message{Role: playground.RoleUser, Text: text})
	req := &playground.GenerateRequest{Messages: messages}
	if s.system != "" {
		system := s.system
		req.System = &system
	}

	outcome := s.adapter.Complete(ctx, req)
	if outcome.Succeeded() {
		if err := s.transcript.AppendTurn(text, outcome.Text); err != nil {
			s.logger.Warn("turn not recorded", "session", s.transcript.ID(), "error", err)
		}
	}
	s.logger.Debug("chat turn",
		"session", s.transcript.ID(),
		"turns", s.transcript.Turns(),
		"outcome", outcome.Kind.String())
	return outcome
}

// Reset starts a new conversation with a new session ID.
// The role instruction is kept.
func (s *Session) Reset() {
	s.transcript = transcript.New(s.trOpts...)
}

// Load replaces the conversation with a JSON transcript from path.
func (s *Session) Load(path string) error {
	t, err := transcript.LoadJSON(path, s.trOpts...)
	if err != nil {
		return err
	}
	s.transcript = t
	s.logger.Info("transcript loaded", "path", path, "turns", t.Turns())
	return nil
}

// SaveText writes conversation_YYYYMMDD_HHMMSS.txt into dir.
func (s *Session) SaveText(dir string) (string, error) {
	path := filepath.Join(dir, transcript.TextFileName(s.now()))
	if err := s.transcript.SaveText(path, TranscriptTitle); err != nil {
		return "", err
	}
	s.logger.Info("transcript saved", "path", path, "format", "text")
	return path, nil
}

// SaveJSON writes chat_history_YYYYMMDD_HHMMSS.json into dir.
func (s *Session) SaveJSON(dir string) (string, error) {
	path := filepath.Join(dir, transcript.JSONFileName(s.now()))
	if err := s.transcript.SaveJSON(path); err != nil {
		return "", err
	}
	s.logger.Info("transcript saved", "path", path, "format", "json")
	return path, nil
}
