// Package console implements the stdin line reader of spec.md §6: a
// reader is kept active for future console commands, but reading a line
// has no side effect in this core.
package console

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	prompt "github.com/c-bata/go-prompt"
)

const defaultPromptPrefix = "> "

// Console reads lines from an io.Reader (os.Stdin by default), mirroring
// the teacher's console.Console shape without the command-execution
// machinery spec.md's Non-goals exclude from this core.
type Console struct {
	log    *slog.Logger
	reader io.Reader
}

// New returns a Console that reads from os.Stdin and logs through log.
func New(log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}
	return &Console{log: log, reader: os.Stdin}
}

// WithReader sets a custom reader, enabling tests without os.Stdin.
func (c *Console) WithReader(r io.Reader) *Console {
	if r != nil {
		c.reader = r
	}
	return c
}

// Run consumes lines until ctx is cancelled or the reader reaches EOF.
func (c *Console) Run(ctx context.Context) {
	if c.reader != os.Stdin {
		c.runScanner(ctx)
		return
	}
	c.runInteractive(ctx)
}

func (c *Console) runScanner(ctx context.Context) {
	scanner := bufio.NewScanner(c.reader)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				c.log.Error("console input error", "err", err)
			}
			return
		}
		c.accept(scanner.Text())
	}
}

func (c *Console) runInteractive(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		line := prompt.Input(defaultPromptPrefix, func(prompt.Document) []prompt.Suggest { return nil },
			prompt.OptionTitle("blockforged console"),
			prompt.OptionPrefix(defaultPromptPrefix),
		)
		c.accept(line)
	}
}

// accept logs a non-empty line at debug level; spec.md §6 specifies no
// other effect for console input in this core.
func (c *Console) accept(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	c.log.Debug("console input", "line", line)
}
