package main

import "fmt"

// The primitive words are implemented directly against the stack. Every
// other combinator is built up from these in the prelude.

type primitive struct {
	name   string
	effect string
	doc    string
	fn     func(vm *VM) error
}

var primitives = []primitive{
	{"dup", "[x -- x x]", "duplicate the top of stack", (*VM).dup},
	{"drop", "[x --]", "discard the top of stack", (*VM).drop},
	{"swap", "[x y -- y x]", "exchange the top two values", (*VM).swap},
	{"over", "[x y -- x y x]", "copy the second value to the top", (*VM).over},
	{"over2", "[x y z -- x y z x y]", "copy the second and third values to the top", (*VM).over2},
	{"pick", "[x y z -- x y z x]", "copy the third value to the top", (*VM).pick},
	{"clear", "[... --]", "empty the stack", (*VM).clear},
	{"depth", "[-- n]", "push the number of values on the stack", (*VM).depthWord},

	{"invoke", "[q --]", "run the invocable on top of stack", (*VM).invokeWord},
	{"dip", "[x q -- x]", "run q with x removed, then restore x", (*VM).dip},
	{"keep", "[x q -- x]", "run q on x, then restore x", (*VM).keep},

	{"if", "[? t f --]", "run t if ? is truthy, else f", (*VM).ifWord},
	{"cond", "[clauses --]", "run the action of the first truthy predicate", (*VM).cond},
}

func (vm *VM) definePrimitives() {
	for _, p := range primitives {
		vm.define(&Word{Name: p.name, Doc: p.doc, Effect: p.effect, Native: p.fn})
	}
}

func (vm *VM) dup() error {
	v, err := vm.stack.Peek()
	if err == nil {
		vm.push(v)
	}
	return err
}

func (vm *VM) drop() error {
	_, err := vm.pop()
	return err
}

func (vm *VM) swap() error {
	x, y, err := vm.stack.Pop2()
	if err == nil {
		vm.push(y)
		vm.push(x)
	}
	return err
}

func (vm *VM) over() error {
	x, err := vm.stack.PeekAt(1)
	if err == nil {
		vm.push(x)
	}
	return err
}

func (vm *VM) over2() error {
	x, err := vm.stack.PeekAt(2)
	if err != nil {
		return err
	}
	y, err := vm.stack.PeekAt(1)
	if err != nil {
		return err
	}
	vm.push(x)
	vm.push(y)
	return nil
}

func (vm *VM) pick() error {
	x, err := vm.stack.PeekAt(2)
	if err == nil {
		vm.push(x)
	}
	return err
}

func (vm *VM) clear() error {
	vm.stack.Clear()
	return nil
}

func (vm *VM) depthWord() error {
	vm.push(Int(vm.stack.Len()))
	return nil
}

func (vm *VM) invokeWord() error {
	q, err := vm.popInvocable()
	if err != nil {
		return err
	}
	return q.invoke(vm)
}

// dip pops q and x, runs q against what remains, and pushes x back on top.
func (vm *VM) dip() error {
	x, qv, err := vm.stack.Pop2()
	if err != nil {
		return err
	}
	q, err := asInvocable(qv)
	if err != nil {
		return err
	}
	if err := q.invoke(vm); err != nil {
		return err
	}
	vm.push(x)
	return nil
}

// keep is dip with x left visible to q: one copy is q's to consume, the other
// is restored on top afterward.
func (vm *VM) keep() error {
	x, qv, err := vm.stack.Pop2()
	if err != nil {
		return err
	}
	q, err := asInvocable(qv)
	if err != nil {
		return err
	}
	vm.push(x)
	if err := q.invoke(vm); err != nil {
		return err
	}
	vm.push(x)
	return nil
}

func (vm *VM) ifWord() error {
	c, tv, fv, err := vm.stack.Pop3()
	if err != nil {
		return err
	}
	t, err := asInvocable(tv)
	if err != nil {
		return err
	}
	f, err := asInvocable(fv)
	if err != nil {
		return err
	}
	if Truthy(c) {
		return t.invoke(vm)
	}
	return f.invoke(vm)
}

// cond invokes its clause quotation to lay out predicate/action pairs, then
// tries each predicate in order. The pair count is validated before any
// predicate runs. A non-invocable predicate is its own truth value, and a
// non-invocable action is pushed as the result; with no match, nil is pushed.
func (vm *VM) cond() error {
	q, err := vm.popInvocable()
	if err != nil {
		return err
	}
	base := vm.stack.Len()
	if err := q.invoke(vm); err != nil {
		return err
	}
	n := vm.stack.Len() - base
	if n < 0 {
		return fmt.Errorf("cond clauses consumed %v values from beneath them: %w", -n, ErrStackUnderflow)
	} else if n%2 != 0 {
		return malformedClausesError(n)
	}
	clauses, err := vm.stack.popN(n)
	if err != nil {
		return err
	}
	for i := 0; i < len(clauses); i += 2 {
		pred, action := clauses[i], clauses[i+1]
		if inv, ok := pred.(Invocable); ok {
			if err := inv.invoke(vm); err != nil {
				return err
			}
			if pred, err = vm.pop(); err != nil {
				return err
			}
		}
		if !Truthy(pred) {
			continue
		}
		if inv, ok := action.(Invocable); ok {
			return inv.invoke(vm)
		}
		vm.push(action)
		return nil
	}
	vm.push(Nil{})
	return nil
}
