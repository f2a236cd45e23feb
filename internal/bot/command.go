package bot

import "strings"

// commandKind is the closed set of commands the dispatcher understands.
type commandKind int

const (
	cmdUnknown commandKind = iota
	cmdChallan
	cmdLock
	cmdUnlock
	cmdShout
	cmdConfess
	cmdKismat
	cmdAukaat
	cmdAfk
	cmdSaaf
	cmdJhatka
	cmdBirthday
)

// command is the result of parsing one message text.
type command struct {
	kind commandKind
	args string
}

// parseCommand recognizes a leading /command token, tolerating the
// @BotName suffix Telegram appends in groups. Everything after the first
// token is the argument string.
func parseCommand(text string) command {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return command{kind: cmdUnknown}
	}

	name, args, _ := strings.Cut(text[1:], " ")
	name, _, _ = strings.Cut(name, "@")

	kind := cmdUnknown
	switch strings.ToLower(name) {
	case "challan":
		kind = cmdChallan
	case "lock":
		kind = cmdLock
	case "unlock":
		kind = cmdUnlock
	case "shout":
		kind = cmdShout
	case "confess":
		kind = cmdConfess
	case "kismat":
		kind = cmdKismat
	case "aukaat":
		kind = cmdAukaat
	case "afk":
		kind = cmdAfk
	case "saaf":
		kind = cmdSaaf
	case "jhatka":
		kind = cmdJhatka
	case "birthday":
		kind = cmdBirthday
	}

	return command{kind: kind, args: strings.TrimSpace(args)}
}
