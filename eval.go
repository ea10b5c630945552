package main

import "fmt"

// Eval applies the evaluation rule to each term in order: literals push,
// quotation literals push a Quotation, and word references resolve and
// invoke. It stops at the first error, leaving the stack as mutated so far.
func (vm *VM) Eval(terms ...Term) error {
	return vm.eval(terms)
}

func (vm *VM) eval(terms []Term) error {
	for _, t := range terms {
		if err := vm.ctx.Err(); err != nil {
			return err
		}
		if err := vm.evalTerm(t); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) evalTerm(t Term) error {
	switch t := t.(type) {
	case Lit:
		vm.push(t.Value)
	case QuoteLit:
		vm.push(Quotation{t.Terms})
	case Call:
		return vm.call(t.Name)
	default:
		return fmt.Errorf("invalid term %T", t)
	}
	return nil
}

func (vm *VM) call(name string) error {
	w, defined := vm.dict[name]
	if !defined {
		return unknownWordError(name)
	}
	if vm.logfn != nil {
		vm.logf(">", "%v -- %v", name, Vector(vm.stack.Snapshot()))
	}
	if w.Native != nil {
		return inWord(name, w.Native(vm))
	}
	return inWord(name, vm.enter(w.Body.terms))
}

// enter evaluates a quotation body one level deeper. The run context is
// checked on every entry, so loops over empty quotations still stop.
func (vm *VM) enter(terms []Term) error {
	if err := vm.ctx.Err(); err != nil {
		return err
	}
	if vm.depthLimit > 0 && vm.depth >= vm.depthLimit {
		return depthError(vm.depthLimit)
	}
	vm.depth++
	defer func() { vm.depth-- }()
	if vm.logfn != nil {
		defer vm.withLogPrefix("  ")()
	}
	return vm.eval(terms)
}

// Invoke runs an invocable value against the stack.
func (vm *VM) Invoke(v Value) error {
	inv, err := asInvocable(v)
	if err != nil {
		return err
	}
	return inv.invoke(vm)
}

func (q Quotation) invoke(vm *VM) error { return vm.enter(q.terms) }

func (ref WordRef) invoke(vm *VM) error { return vm.call(string(ref)) }
