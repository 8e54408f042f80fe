package demo

import (
	"context"
	"strings"

	"github.com/haowjy/genai-playground-go/chat"
)

// RunChat is the chat bot: an optional role, then a conversation that
// understands the chat commands. Saving writes a text transcript.
func RunChat(ctx context.Context, env *Env) error {
	c := env.Console
	c.Banner("🚀 Chat bot",
		"Type 'quit' or 'exit' to leave",
		"Type 'save' to save the conversation",
		"Type 'clear' to start over",
		"Type 'help' for all commands")

	var opts []chat.Option
	setRole, err := c.Confirm("Set a chat role?")
	if err != nil {
		return quitOnEOF(err)
	}
	if setRole {
		role, err := c.Ask("Describe the role (e.g. you are a friendly assistant): ")
		if err != nil {
			return quitOnEOF(err)
		}
		opts = append(opts, chat.WithSystem(role))
	}
	opts = append(opts, chat.WithLogger(env.logger()), chat.WithClock(env.now))

	session := chat.NewSession(env.Adapter, opts...)
	c.Success("Chat session started")
	return chatLoop(ctx, env, session, session.SaveText)
}

// chatLoop reads messages until quit or end of input. save writes the
// transcript in whichever format the caller wants.
func chatLoop(ctx context.Context, env *Env, session *chat.Session, save func(dir string) (string, error)) error {
	c := env.Console
	for {
		line, err := c.Ask("\n👤 You: ")
		if err != nil {
			return quitOnEOF(err)
		}
		if line == "" {
			continue
		}

		switch chat.ParseCommand(line) {
		case chat.CommandQuit:
			c.Println("👋 Bye!")
			return nil
		case chat.CommandSave:
			if session.Transcript().Len() == 0 {
				c.Info("Nothing to save yet")
				continue
			}
			path, err := save(env.outputDir())
			if err != nil {
				c.Error("save failed: " + err.Error())
				continue
			}
			c.Success("Conversation saved to " + path)
		case chat.CommandClear:
			session.Reset()
			c.Success("Conversation cleared")
		case chat.CommandHelp:
			c.Section("Commands")
			for _, l := range chat.HelpLines {
				c.Println("  " + l)
			}
		case chat.CommandHistory:
			printHistory(env, session)
		default:
			outcome := session.Send(ctx, line)
			c.Printf("🤖 Assistant: ")
			c.Outcome(outcome)
		}
	}
}

func printHistory(env *Env, session *chat.Session) {
	c := env.Console
	entries := session.Transcript().Entries()
	if len(entries) == 0 {
		c.Info("No messages yet")
		return
	}
	c.Section("History")
	for _, e := range entries {
		c.Printf("[%s] %s: %s\n", e.Timestamp.Format("15:04:05"), e.Role, strings.TrimSpace(e.Text))
	}
}
