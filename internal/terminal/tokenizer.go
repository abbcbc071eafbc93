package terminal

import "strings"

// Tokenize splits an input line into the commands it contains, in order.
//
// Semicolons take priority, then newlines. A line starting with add is
// split before every further " add ". Separators inside single or
// double quotes never split.
func Tokenize(line string) []string {
	if cuts := boundaries(line, ";", false); len(cuts) > 0 {
		return splitAt(line, cuts, 1)
	}
	if cuts := boundaries(line, "\n", false); len(cuts) > 0 {
		return splitAt(line, cuts, 1)
	}
	if verbOf(line) == "add" {
		// Only the leading space is consumed so each part keeps its verb.
		if cuts := boundaries(line, " add ", true); len(cuts) > 0 {
			return splitAt(line, cuts, 1)
		}
	}
	if cmd := strings.TrimSpace(line); cmd != "" {
		return []string{cmd}
	}
	return nil
}

// boundaries returns the offsets of sep in s that are outside quotes.
// A quote closes only the quote it opened; there are no escapes.
func boundaries(s, sep string, fold bool) []int {
	var cuts []int
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case i+len(sep) <= len(s) && matches(s[i:i+len(sep)], sep, fold):
			cuts = append(cuts, i)
		}
	}
	return cuts
}

func matches(s, sep string, fold bool) bool {
	if fold {
		return strings.EqualFold(s, sep)
	}
	return s == sep
}

// splitAt cuts s at every offset, dropping skip bytes after each cut,
// and returns the trimmed non-empty parts.
func splitAt(s string, cuts []int, skip int) []string {
	var parts []string
	start := 0
	for _, cut := range append(cuts, len(s)) {
		if cut < start {
			continue
		}
		if part := strings.TrimSpace(s[start:cut]); part != "" {
			parts = append(parts, part)
		}
		start = cut + skip
	}
	return parts
}

// verbOf returns the lower-cased first word of a command.
func verbOf(cmd string) string {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
