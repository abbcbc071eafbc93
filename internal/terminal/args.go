package terminal

import "strings"

// ParseArgs splits a command into its words. Single or double quotes group
// words containing spaces and are removed. An unterminated quote runs to
// the end of the command. Empty words are dropped.
func ParseArgs(cmd string) []string {
	var args []string
	var current strings.Builder
	var quote rune

	flush := func() {
		if arg := strings.TrimSpace(current.String()); arg != "" {
			args = append(args, arg)
		}
		current.Reset()
	}

	for _, r := range cmd {
		switch {
		case quote == 0 && (r == '"' || r == '\''):
			quote = r
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && r == ' ':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return args
}
