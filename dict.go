package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tlpinney/gershwin/internal/fileinput"
)

// Word is a named dictionary entry. Exactly one of Native or Body runs when
// it is invoked; Doc and Effect are informational only.
type Word struct {
	Name   string
	Doc    string
	Effect string

	Native func(vm *VM) error
	Body   Quotation
	Host   *HostFunc
}

// Definition is a word definition read from source.
type Definition struct {
	Name   string
	Doc    string
	Effect string
	Body   []Term
	Loc    fileinput.Location
}

// Define installs a quotation bodied word, replacing any prior word of the
// same name. Callers that refer to the name will use the new definition from
// their next invocation on.
func (vm *VM) Define(name, doc string, body Quotation) {
	vm.define(&Word{Name: name, Doc: doc, Body: body})
}

// DefineNative installs a word implemented in Go.
func (vm *VM) DefineNative(name, doc string, fn func(vm *VM) error) {
	vm.define(&Word{Name: name, Doc: doc, Native: fn})
}

// DefineHost installs a word that applies a host function to the top
// h.Arity stack values.
func (vm *VM) DefineHost(h *HostFunc) error {
	if h.Fn == nil {
		return errors.New("host function has no implementation")
	}
	if h.Arity < 0 || h.Arity > maxHostArity {
		return fmt.Errorf("host function %v: arity %v not in 0..%v", h.Name, h.Arity, maxHostArity)
	}
	vm.define(&Word{
		Name:   h.Name,
		Doc:    h.Doc,
		Host:   h,
		Native: func(vm *VM) error { return vm.applyHost(h, h.Arity) },
	})
	return nil
}

func (vm *VM) defineSource(def *Definition) {
	vm.define(&Word{
		Name:   def.Name,
		Doc:    def.Doc,
		Effect: def.Effect,
		Body:   Quotation{def.Body},
	})
}

func (vm *VM) define(w *Word) {
	if vm.dict == nil {
		vm.dict = make(map[string]*Word)
	}
	if _, redefined := vm.dict[w.Name]; redefined {
		vm.logf("def", "%v (redefined)", w.Name)
	} else {
		vm.logf("def", "%v", w.Name)
	}
	vm.dict[w.Name] = w
}

// Lookup returns the word currently bound to name.
func (vm *VM) Lookup(name string) (*Word, error) {
	if w, defined := vm.dict[name]; defined {
		return w, nil
	}
	return nil, unknownWordError(name)
}

func (vm *VM) wordNames() []string {
	names := make([]string, 0, len(vm.dict))
	for name := range vm.dict {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
