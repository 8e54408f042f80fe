// Package demo implements the interactive playground programs. Each Run
// function drives one program over a console; the mains under examples/
// only build the Env.
package demo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	playground "github.com/haowjy/genai-playground-go"
	"github.com/haowjy/genai-playground-go/config"
	"github.com/haowjy/genai-playground-go/console"
	"github.com/haowjy/genai-playground-go/imagegen"
)

// ImageGenerator turns a prompt into image bytes. *imagegen.Client implements it.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt, model string) (*imagegen.Image, error)
	Model() string
}

// Env is everything a demo needs.
type Env struct {
	Config  *config.Config
	Adapter *playground.Adapter
	Console *console.Console
	Logger  *slog.Logger

	// Images is nil when no HuggingFace token is configured.
	Images ImageGenerator

	// Now defaults to time.Now.
	Now func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) outputDir() string {
	if e.Config == nil || e.Config.OutputDir == "" {
		return "."
	}
	return e.Config.OutputDir
}

func (e *Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// quitOnEOF treats exhausted input as a normal exit.
func quitOnEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
