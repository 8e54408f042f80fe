package chat

import "strings"

// Command is a sentinel typed at the chat prompt instead of a message.
type Command int

const (
	CommandNone Command = iota // ordinary message
	CommandQuit
	CommandSave
	CommandClear
	CommandHelp
	CommandHistory
)

var commandWords = map[string]Command{
	"quit":    CommandQuit,
	"exit":    CommandQuit,
	"退出":      CommandQuit,
	"save":    CommandSave,
	"clear":   CommandClear,
	"help":    CommandHelp,
	"history": CommandHistory,
}

// ParseCommand matches a whole trimmed line, case-insensitively.
// Anything else is CommandNone and should be sent as a message.
func ParseCommand(line string) Command {
	if cmd, ok := commandWords[strings.ToLower(strings.TrimSpace(line))]; ok {
		return cmd
	}
	return CommandNone
}

func (c Command) String() string {
	switch c {
	case CommandQuit:
		return "quit"
	case CommandSave:
		return "save"
	case CommandClear:
		return "clear"
	case CommandHelp:
		return "help"
	case CommandHistory:
		return "history"
	default:
		return "message"
	}
}

// HelpLines describes the commands, one per line.
var HelpLines = []string{
	"quit/exit/退出 - leave the chat",
	"save - save the conversation to a text file",
	"clear - start a new conversation",
	"history - show the conversation so far",
	"help - show this help",
}
