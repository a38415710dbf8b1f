package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// captureCobraOutput runs a command through the Cobra tree and captures output.
// It redirects os.Stdout so that direct fmt.Print calls from Cobra handlers
// are captured instead of writing raw bytes into the Bubbletea alternate screen.
func captureCobraOutput(app *App, args []string) string {
	// Prompts would fight the TUI for the terminal; commands must take --yes.
	sub := *app
	sub.Interactive = func() bool { return false }

	origStdout := os.Stdout
	pr, pw, err := os.Pipe()
	if err != nil {
		return shellError(err)
	}
	os.Stdout = pw

	root := NewRootCmd(&sub)
	root.SetOut(pw)
	root.SetErr(pw)
	root.SetArgs(args)

	var buf strings.Builder
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&buf, pr)
		close(done)
	}()

	if execErr := root.Execute(); execErr != nil {
		fmt.Fprint(pw, shellError(execErr))
	}

	pw.Close()
	os.Stdout = origStdout
	<-done
	return buf.String()
}

// commandNames lists the visible top-level commands.
func commandNames(root *cobra.Command) []string {
	var names []string
	for _, c := range root.Commands() {
		if !c.Hidden && c.Name() != "help" && c.Name() != "completion" {
			names = append(names, c.Name())
		}
	}
	sort.Strings(names)
	return names
}

// splitShellArgs splits a command line on whitespace, honouring single and
// double quotes and backslash escapes.
func splitShellArgs(input string) ([]string, error) {
	var parts []string
	var cur strings.Builder

	inSingle := false
	inDouble := false
	escaped := false
	tokenStarted := false

	flush := func() {
		parts = append(parts, cur.String())
		cur.Reset()
		tokenStarted = false
	}

	for _, r := range input {
		if escaped {
			cur.WriteRune(r)
			tokenStarted = true
			escaped = false
			continue
		}

		if inSingle {
			if r == '\'' {
				inSingle = false
			} else {
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		if inDouble {
			switch r {
			case '"':
				inDouble = false
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		switch r {
		case '\\':
			escaped = true
			tokenStarted = true
		case '\'':
			inSingle = true
			tokenStarted = true
		case '"':
			inDouble = true
			tokenStarted = true
		case ' ', '\t', '\n', '\r':
			if tokenStarted {
				flush()
			}
		default:
			cur.WriteRune(r)
			tokenStarted = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if tokenStarted {
		flush()
	}
	return parts, nil
}
