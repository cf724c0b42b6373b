package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// errSessionExpired is the terminal-facing form of a revoked credential.
var errSessionExpired = errors.New("session expired, run 'adminctl login' to sign in again")

// promptLine reads a single trimmed line from in, printing label first.
// Callers make one bufio.Reader per command run and pass it to every
// prompt, so buffered input is never lost between prompts.
func promptLine(out io.Writer, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question, defaulting to no.
func confirm(out io.Writer, in *bufio.Reader, question string) bool {
	answer, err := promptLine(out, in, question+" [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
