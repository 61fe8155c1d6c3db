package userinteraction

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"assignment-validator/internal/application/port/output"

	"github.com/fatih/color"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

const maxDebugLen = 2000

type ConsoleUserInteraction struct {
	reader *bufio.Reader
	out    io.Writer

	// pending holds a read that outlived a cancelled prompt; the next
	// prompt receives its line.
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

func NewConsoleUserInteraction() *ConsoleUserInteraction {
	return NewConsoleUserInteractionWithIO(os.Stdin, os.Stdout)
}

func NewConsoleUserInteractionWithIO(in io.Reader, out io.Writer) *ConsoleUserInteraction {
	return &ConsoleUserInteraction{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (u *ConsoleUserInteraction) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if u.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := u.reader.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
		u.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-u.pending:
		u.pending = nil
		if res.err != nil && !(errors.Is(res.err, io.EOF) && res.line != "") {
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}

// AskBaseURL returns defaultURL when the operator just presses Enter.
func (u *ConsoleUserInteraction) AskBaseURL(ctx context.Context, prompt, defaultURL string) (string, error) {
	if defaultURL != "" {
		fmt.Fprintf(u.out, "\n%s [%s]\n> ", prompt, defaultURL)
	} else {
		fmt.Fprintf(u.out, "\n%s\n> ", prompt)
	}

	answer, err := u.readLine(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	if answer == "" {
		return defaultURL, nil
	}
	return answer, nil
}

func (u *ConsoleUserInteraction) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintf(u.out, "\n%s [y/N] ", question)

	answer, err := u.readLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if ctx.Err() != nil {
			return false, err
		}
		return false, fmt.Errorf("failed to read user input: %w", err)
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (u *ConsoleUserInteraction) ShowTitle(ctx context.Context, title string) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(u.out, "━━━ %s ━━━\n", title)
}

func (u *ConsoleUserInteraction) ShowProgress(ctx context.Context, message string) {
	dim := color.New(color.Faint)
	dim.Fprintln(u.out, message)
}

func (u *ConsoleUserInteraction) ShowSuccess(ctx context.Context, message string) {
	green := color.New(color.FgGreen, color.Bold)
	green.Fprintf(u.out, "✓ %s\n", message)
}

func (u *ConsoleUserInteraction) ShowError(ctx context.Context, message string) {
	red := color.New(color.FgRed)
	red.Fprintf(u.out, "❌ %s\n", message)
}

// ShowDebugData prints the raw payload a service answered with, indented when
// it is JSON.
func (u *ConsoleUserInteraction) ShowDebugData(ctx context.Context, raw []byte) {
	if len(raw) == 0 {
		return
	}

	yellow := color.New(color.FgYellow)
	yellow.Fprintln(u.out, "Response data:")

	dim := color.New(color.Faint)
	dim.Fprintln(u.out, truncate(prettyJSON(raw), maxDebugLen))
}

func (u *ConsoleUserInteraction) ShowFacts(ctx context.Context, facts []string) {
	bold := color.New(color.Bold)
	bold.Fprintln(u.out, "Facts:")

	if len(facts) == 0 {
		dim := color.New(color.Faint)
		dim.Fprintln(u.out, "(no facts returned)")
		return
	}

	for _, fact := range facts {
		fmt.Fprintf(u.out, "• %s\n", fact)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
