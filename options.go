package main

import (
	"io"

	"github.com/tlpinney/gershwin/internal/fileinput"
	"github.com/tlpinney/gershwin/internal/flushio"
)

// VMOption configures a VM under construction.
type VMOption interface{ apply(vm *VM) }

const defaultDepthLimit = 10000

var defaultOptions = VMOptions(
	withDepthLimit(defaultDepthLimit),
	withOutput(io.Discard),
)

// VMOptions combines options into one, applied in order; nils are skipped.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) { vm.logfn = logfn }

type inputOption []io.Reader
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type withDepthLimit int
type hostOption []*HostFunc
type noPreludeOption struct{}

func withInput(rs ...io.Reader) inputOption { return inputOption(rs) }
func withOutput(w io.Writer) outputOption   { return outputOption{w} }
func withTee(w io.Writer) teeOption         { return teeOption{w} }

func (rs inputOption) apply(vm *VM) { vm.in.Enqueue(rs...) }

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.New(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	if vm.out == nil {
		vm.out = flushio.New(o.Writer)
		return
	}
	vm.out = flushio.Tee(vm.out, flushio.New(o.Writer))
}

func (limit withDepthLimit) apply(vm *VM) { vm.depthLimit = int(limit) }

func (hs hostOption) apply(vm *VM) { vm.hosts = append(vm.hosts, hs...) }

func (noPreludeOption) apply(vm *VM) { vm.noPrelude = true }

// WithInput queues source readers for Run; a reader with a Name method lends
// that name to error locations.
func WithInput(rs ...io.Reader) VMOption { return withInput(rs...) }

// WithNamedInput queues source text under the given name.
func WithNamedInput(name, src string) VMOption {
	return withInput(fileinput.NamedString(name, src))
}

// WithOutput replaces the stream written by output words.
func WithOutput(w io.Writer) VMOption { return withOutput(w) }

// WithTee copies all output to an additional stream.
func WithTee(w io.Writer) VMOption { return withTee(w) }

// WithLogf enables trace logging.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }

// WithDepthLimit bounds quotation nesting; zero disables the bound.
func WithDepthLimit(limit int) VMOption { return withDepthLimit(limit) }

// WithHost registers host functions as words once the VM is built.
func WithHost(hs ...*HostFunc) VMOption { return hostOption(hs) }

// WithoutPrelude leaves only the primitive words defined.
func WithoutPrelude() VMOption { return noPreludeOption{} }
