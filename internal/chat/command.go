package chat

import "strings"

// Command is a reserved control token carried in the message channel.
// Commands trigger phase transitions and are checked before any topic or
// story interpretation, so they can never be mistaken for content.
type Command int

const (
	CmdNone Command = iota
	CmdStartVocabulary
	CmdNextVocabulary
	CmdFinishVocabulary
	CmdContinue // facts mode only
)

// ParseCommand recognizes the reserved control tokens. Matching is exact
// on the trimmed, lowercased message: a token embedded in prose is
// content, not a command.
func ParseCommand(message string) Command {
	switch strings.ToLower(strings.TrimSpace(message)) {
	case "start_vocabulary":
		return CmdStartVocabulary
	case "next_vocabulary":
		return CmdNextVocabulary
	case "finish_vocabulary":
		return CmdFinishVocabulary
	case "continue":
		return CmdContinue
	default:
		return CmdNone
	}
}
