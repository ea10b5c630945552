package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/tlpinney/gershwin/internal/fileinput"
	"github.com/tlpinney/gershwin/internal/logio"
	"github.com/tlpinney/gershwin/internal/panicerr"
)

func main() {
	ctx := context.Background()
	log := logio.New(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	var (
		timeout    time.Duration
		trace      bool
		depthLimit int
		exprs      []string
		interact   bool
		dump       bool
		natives    bool
	)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.IntVar(&depthLimit, "depth-limit", defaultDepthLimit, "bound quotation nesting; 0 for no limit")
	flag.Func("e", "evaluate an expression after any script files; may be repeated", func(s string) error {
		exprs = append(exprs, s)
		return nil
	})
	flag.BoolVar(&interact, "i", false, "start an interactive session after running inputs")
	flag.BoolVar(&dump, "dump", false, "dump VM state on exit")
	flag.BoolVar(&natives, "dump-natives", false, "dump VM state on exit, listing native words by name")
	flag.Parse()

	var opts = []VMOption{
		WithOutput(os.Stdout),
		WithDepthLimit(depthLimit),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}

	args := flag.Args()
	for _, name := range args {
		f, err := os.Open(name)
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		opts = append(opts, WithInput(fileinput.Named(name, f)))
	}
	for i, expr := range exprs {
		opts = append(opts, WithNamedInput(fmt.Sprintf("<-e %v>", i+1), expr+"\n"))
	}
	stdinTTY := term.IsTerminal(int(os.Stdin.Fd()))
	if len(args) == 0 && len(exprs) == 0 && !stdinTTY {
		opts = append(opts, WithInput(fileinput.Named("<stdin>", io.NopCloser(os.Stdin))))
	}
	vm := New(opts...)
	defer func() { log.ErrorIf(vm.Close()) }()

	if dump || natives {
		defer vmDumper{
			vm:      vm,
			out:     &logio.Writer{Logf: log.Leveledf("DUMP")},
			natives: natives,
		}.dump()
	}

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := vm.Run(ctx); err != nil {
		log.Errorf("%v", err)
		if stack := panicerr.Stack(err); trace && stack != "" {
			log.Printf("TRACE", "panic stack:\n%v", stack)
		}
		return
	}
	if interact || (len(args) == 0 && len(exprs) == 0 && stdinTTY) {
		log.ErrorIf(runRepl(ctx, vm))
	}
}
