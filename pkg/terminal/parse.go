package terminal

import (
	"fmt"
	"strings"
)

// ParseCommandLine splits a shell-like command line into leading KEY=VALUE
// environment overrides, the program, and its arguments. Only tokens with a
// valid identifier key are treated as overrides; the first token that is not
// one becomes the program.
func ParseCommandLine(line string) (env []string, prog string, args []string, err error) {
	tokens, err := tokenize(line)
	if err != nil {
		return nil, "", nil, err
	}
	if len(tokens) == 0 {
		return nil, "", nil, fmt.Errorf("empty command")
	}

	i := 0
	for ; i < len(tokens); i++ {
		key, _, ok := strings.Cut(tokens[i], "=")
		if !ok || !isIdentifier(key) {
			break
		}
		env = append(env, tokens[i])
	}
	if i == len(tokens) {
		return nil, "", nil, fmt.Errorf("no program in command %q", line)
	}

	return env, tokens[i], tokens[i+1:], nil
}

// tokenize splits on whitespace, honoring single and double quotes.
func tokenize(line string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inToken := false
	var quote byte

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			inToken = true
		case c == ' ' || c == '\t':
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteByte(c)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote in command")
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
