package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/tlpinney/gershwin/internal/fileinput"
	"github.com/tlpinney/gershwin/internal/flushio"
)

// VM is one evaluation session: it owns a stack, a dictionary and the input
// and output streams that words read and write. A VM must not be used from
// more than one goroutine at a time; independent sessions each get their own.
type VM struct {
	logging

	stack Stack
	dict  map[string]*Word

	in  fileinput.Input
	out flushio.WriteFlusher

	ctx        context.Context
	depth      int
	depthLimit int

	// results collects unit-test outcomes for the innermost run-suite
	results []bool

	noPrelude bool
	hosts     []*HostFunc
	nextLock  int
}

// Stack returns the VM's data stack.
func (vm *VM) Stack() *Stack { return &vm.stack }

func (vm *VM) push(v Value) { vm.stack.Push(v) }

func (vm *VM) pop() (Value, error) { return vm.stack.Pop() }

func (vm *VM) popInvocable() (Invocable, error) {
	v, err := vm.stack.Pop()
	if err != nil {
		return nil, err
	}
	return asInvocable(v)
}

func (vm *VM) popInt() (Int, error) {
	v, err := vm.stack.Pop()
	if err != nil {
		return 0, err
	}
	n, ok := v.(Int)
	if !ok {
		return 0, typeError{"int", v}
	}
	return n, nil
}

func asInvocable(v Value) (Invocable, error) {
	if inv, ok := v.(Invocable); ok {
		return inv, nil
	}
	return nil, typeError{"invocable", v}
}

func (vm *VM) write(s string) error {
	_, err := vm.out.Write([]byte(s))
	return err
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		mark += strings.Repeat(" ", n)
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
