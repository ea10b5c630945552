package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
)

const replPrompt = "gershwin> "

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gershwin_history")
}

// runRepl reads lines until EOF, evaluating each complete chunk and printing
// the stack after it. Interrupting a partial chunk discards it.
func runRepl(ctx context.Context, vm *VM) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile(),
		InterruptPrompt: "^C",
		EOFPrompt:       "bye",
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(replPrompt)-2) + "| "

	var buf []byte
	for n := 1; ; {
		line, err := rl.ReadSlice()
		if err == readline.ErrInterrupt {
			buf = nil
			rl.SetPrompt(replPrompt)
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if len(buf) != 0 {
			line = append(append(buf, '\n'), line...)
			buf = nil
			rl.SetPrompt(replPrompt)
		}
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		err = vm.EvalString(ctx, fmt.Sprintf("<repl %v>", n), string(line))
		switch {
		case errors.Is(err, errIncomplete):
			buf = append([]byte(nil), line...)
			rl.SetPrompt(contPrompt)
			continue
		case err != nil:
			fmt.Fprintf(rl.Stderr(), "ERROR: %v\n", err)
		}
		n++
		fmt.Fprintf(rl.Stdout(), "%v\n", Vector(vm.stack.Snapshot()))
	}
}
