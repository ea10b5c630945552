package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tlpinney/gershwin/internal/fileinput"
	"github.com/tlpinney/gershwin/internal/panicerr"
)

// New builds a VM with the primitive words, the prelude, and any host
// functions given by options. It panics if a host function is invalid.
func New(opts ...VMOption) *VM {
	vm := &VM{ctx: context.Background()}
	defaultOptions.apply(vm)
	VMOptions(opts...).apply(vm)
	if err := vm.init(); err != nil {
		panic(err)
	}
	return vm
}

func (vm *VM) init() error {
	vm.definePrimitives()
	if !vm.noPrelude {
		if err := vm.loadPrelude(); err != nil {
			return fmt.Errorf("prelude: %w", err)
		}
	}
	for _, h := range vm.hosts {
		if err := vm.DefineHost(h); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) loadPrelude() error {
	var buf bytes.Buffer
	if _, err := prelude.WriteTo(&buf); err != nil {
		return err
	}
	var in fileinput.Input
	in.Enqueue(fileinput.Named(prelude.Name(), &buf))
	return vm.evalFrom(&in)
}

// Run reads and evaluates every queued input form by form, until the input
// is exhausted, ctx is done, or an error occurs.
func (vm *VM) Run(ctx context.Context) error {
	defer vm.out.Flush()
	return vm.withContext(ctx, func() error {
		return vm.evalFrom(&vm.in)
	})
}

// EvalString reads all of src before evaluating any of it, so a syntax error
// leaves the VM untouched. Incomplete input wraps errIncomplete.
func (vm *VM) EvalString(ctx context.Context, name, src string) error {
	defer vm.out.Flush()
	var in fileinput.Input
	in.Enqueue(fileinput.NamedString(name, src))
	rd := termReader{in: &in}
	forms, err := rd.readAll()
	if err != nil {
		return err
	}
	return vm.withContext(ctx, func() error {
		for _, f := range forms {
			if err := vm.evalForm(f); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close releases any remaining input and flushes output.
func (vm *VM) Close() error {
	err := vm.in.Close()
	if ferr := vm.out.Flush(); err == nil {
		err = ferr
	}
	return err
}

func (vm *VM) withContext(ctx context.Context, f func() error) error {
	prior := vm.ctx
	vm.ctx = ctx
	defer func() { vm.ctx = prior }()
	return panicerr.Recover("VM", f)
}

func (vm *VM) evalFrom(in *fileinput.Input) error {
	rd := termReader{in: in}
	for {
		f, err := rd.read()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		if err := vm.evalForm(f); err != nil {
			return err
		}
	}
}

func (vm *VM) evalForm(f form) error {
	if f.Def != nil {
		vm.defineSource(f.Def)
		return nil
	}
	if err := vm.evalTerm(f.Term); err != nil {
		return locError{f.Loc, err}
	}
	return nil
}

type locError struct {
	loc fileinput.Location
	err error
}

func (err locError) Error() string { return fmt.Sprintf("%v: %v", err.loc, err.err) }
func (err locError) Unwrap() error { return err.err }
