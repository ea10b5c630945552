package main

import (
	"fmt"
	"math"
	"strings"
)

// HostFunc is a procedure supplied by the embedding program. Invoking it pops
// Arity values, passes them in logical order, and pushes every result; a
// function with nothing to report returns no results.
type HostFunc struct {
	Name  string
	Doc   string
	Arity int
	Fn    func(args []Value) ([]Value, error)
}

const maxHostArity = 4

func (h *HostFunc) String() string { return fmt.Sprintf("#<host %v/%v>", h.Name, h.Arity) }

func (h *HostFunc) invoke(vm *VM) error { return vm.applyHost(h, h.Arity) }

// applyHost applies h to the top n values, failing if n is not h's arity.
func (vm *VM) applyHost(h *HostFunc, n int) (err error) {
	if n != h.Arity {
		return arityError{h.Name, h.Arity, n}
	}
	var args []Value
	switch n {
	case 0:
	case 1:
		var a Value
		a, err = vm.pop()
		args = []Value{a}
	case 2:
		var a, b Value
		a, b, err = vm.stack.Pop2()
		args = []Value{a, b}
	case 3:
		var a, b, c Value
		a, b, c, err = vm.stack.Pop3()
		args = []Value{a, b, c}
	case 4:
		var a, b, c, d Value
		a, b, c, d, err = vm.stack.Pop4()
		args = []Value{a, b, c, d}
	default:
		return arityError{h.Name, h.Arity, n}
	}
	if err != nil {
		return err
	}
	results, err := h.Fn(args)
	if err != nil {
		return err
	}
	for _, v := range results {
		if v != nil {
			vm.push(v)
		}
	}
	return nil
}

// applyN implements apply-n: [args.. f n -- results..]
func (vm *VM) applyN() error {
	n, err := vm.popInt()
	if err != nil {
		return err
	}
	fv, err := vm.pop()
	if err != nil {
		return err
	}
	switch f := fv.(type) {
	case *HostFunc:
		return vm.applyHost(f, int(n))
	case WordRef:
		w, err := vm.Lookup(string(f))
		if err != nil {
			return err
		}
		if w.Host == nil {
			return typeError{"host function", fv}
		}
		return vm.applyHost(w.Host, int(n))
	}
	return typeError{"host function", fv}
}

// Typed adapters bind Go functions as words. Each pops its fixed arity and
// passes the values in the order they were pushed.

func fn1(f func(a Value) (Value, error)) func(vm *VM) error {
	return func(vm *VM) error {
		a, err := vm.pop()
		if err != nil {
			return err
		}
		r, err := f(a)
		if err == nil {
			vm.push(r)
		}
		return err
	}
}

func fn2(f func(a, b Value) (Value, error)) func(vm *VM) error {
	return func(vm *VM) error {
		a, b, err := vm.stack.Pop2()
		if err != nil {
			return err
		}
		r, err := f(a, b)
		if err == nil {
			vm.push(r)
		}
		return err
	}
}

func fn3(f func(a, b, c Value) (Value, error)) func(vm *VM) error {
	return func(vm *VM) error {
		a, b, c, err := vm.stack.Pop3()
		if err != nil {
			return err
		}
		r, err := f(a, b, c)
		if err == nil {
			vm.push(r)
		}
		return err
	}
}

// proc1 binds a word that consumes one value and produces none.
func proc1(f func(vm *VM, a Value) error) func(vm *VM) error {
	return func(vm *VM) error {
		a, err := vm.pop()
		if err != nil {
			return err
		}
		return f(vm, a)
	}
}

func init() {
	primitives = append(primitives,
		primitive{"+", "[x y -- x+y]", "", fn2(add)},
		primitive{"-", "[x y -- x-y]", "", fn2(sub)},
		primitive{"*", "[x y -- x*y]", "", fn2(mul)},
		primitive{"/", "[x y -- x/y]", "", fn2(div)},
		primitive{"mod", "[x y -- x%y]", "", fn2(mod)},
		primitive{"inc", "[x -- x+1]", "", fn1(func(a Value) (Value, error) { return add(a, Int(1)) })},
		primitive{"dec", "[x -- x-1]", "", fn1(func(a Value) (Value, error) { return sub(a, Int(1)) })},

		primitive{"=", "[x y -- ?]", "structural equality", fn2(func(a, b Value) (Value, error) { return Bool(Equal(a, b)), nil })},
		primitive{"not=", "[x y -- ?]", "", fn2(func(a, b Value) (Value, error) { return Bool(!Equal(a, b)), nil })},
		primitive{"<", "[x y -- ?]", "", fn2(compareWith(func(c int) bool { return c < 0 }))},
		primitive{">", "[x y -- ?]", "", fn2(compareWith(func(c int) bool { return c > 0 }))},
		primitive{"<=", "[x y -- ?]", "", fn2(compareWith(func(c int) bool { return c <= 0 }))},
		primitive{">=", "[x y -- ?]", "", fn2(compareWith(func(c int) bool { return c >= 0 }))},

		primitive{"and", "[x y -- ?]", "are both truthy", fn2(func(a, b Value) (Value, error) { return Bool(Truthy(a) && Truthy(b)), nil })},
		primitive{"or", "[x y -- ?]", "is either truthy", fn2(func(a, b Value) (Value, error) { return Bool(Truthy(a) || Truthy(b)), nil })},
		primitive{"not", "[x -- ?]", "", fn1(func(a Value) (Value, error) { return Bool(!Truthy(a)), nil })},

		primitive{"str", "[x -- s]", "convert to a string", fn1(func(a Value) (Value, error) { return Str(toStr(a)), nil })},
		primitive{"str2", "[x y -- s]", "concatenate two values as strings", fn2(func(a, b Value) (Value, error) { return Str(toStr(a) + toStr(b)), nil })},
		primitive{"str3", "[x y z -- s]", "concatenate three values as strings", fn3(func(a, b, c Value) (Value, error) { return Str(toStr(a) + toStr(b) + toStr(c)), nil })},

		primitive{"count", "[coll -- n]", "", fn1(count)},
		primitive{"first", "[coll -- x]", "the first element, or nil", fn1(first)},
		primitive{"rest", "[coll -- vec]", "all but the first element", fn1(rest)},
		primitive{"nth", "[coll i -- x]", "", fn2(nth)},
		primitive{"conj", "[vec x -- vec]", "append x to a copy of vec", fn2(conj)},
		primitive{"concat", "[a b -- vec]", "", fn2(concat)},
		primitive{"empty?", "[coll -- ?]", "", fn1(func(a Value) (Value, error) {
			elems, err := elements(a)
			return Bool(len(elems) == 0), err
		})},
		primitive{"range", "[n -- vec]", "the integers from 0 below n", fn1(rangeN)},

		primitive{"print", "[x --]", "write the string form of x", proc1(func(vm *VM, a Value) error { return vm.write(toStr(a)) })},
		primitive{"println", "[x --]", "write the string form of x and a newline", proc1(func(vm *VM, a Value) error { return vm.write(toStr(a) + "\n") })},
		primitive{"pr", "[x --]", "write the printed form of x", proc1(func(vm *VM, a Value) error { return vm.write(a.String()) })},
		primitive{".s", "[--]", "write the stack, top first", func(vm *VM) error {
			return vm.write(Vector(vm.stack.Snapshot()).String() + "\n")
		}},

		primitive{"doc", "[ref -- s]", "the documentation of a word, or nil", wordInfo(func(w *Word) Value {
			if w.Doc == "" {
				return Nil{}
			}
			return Str(w.Doc)
		})},
		primitive{"effect", "[ref -- s]", "the stack effect of a word, or nil", wordInfo(func(w *Word) Value {
			if w.Effect == "" {
				return Nil{}
			}
			return Str(w.Effect)
		})},
		primitive{"defined?", "[ref -- ?]", "is the word defined", func(vm *VM) error {
			v, err := vm.pop()
			if err != nil {
				return err
			}
			ref, ok := v.(WordRef)
			if !ok {
				return typeError{"word reference", v}
			}
			_, defined := vm.dict[string(ref)]
			vm.push(Bool(defined))
			return nil
		}},
		primitive{"words", "[-- vec]", "the names of all defined words", func(vm *VM) error {
			var names Vector
			for _, name := range vm.wordNames() {
				names = append(names, Str(name))
			}
			vm.push(names)
			return nil
		}},
		primitive{"invocable?", "[x -- ?]", "can x be invoked", fn1(isInvocable)},
		primitive{"function?", "[x -- ?]", "can x be invoked", fn1(isInvocable)},
		primitive{"type-of", "[x -- kw]", "", fn1(func(a Value) (Value, error) { return Keyword(typeName(a)), nil })},

		primitive{"apply-n", "[args.. f n -- results..]", "apply a host function to n values", (*VM).applyN},
		primitive{"make-lock", "[-- lock]", "", func(vm *VM) error {
			vm.nextLock++
			vm.push(newLock(vm.nextLock))
			return nil
		}},
		primitive{"with-lock", "[lock q --]", "run q holding lock", (*VM).withLock},
	)
}

func isInvocable(a Value) (Value, error) {
	_, ok := a.(Invocable)
	return Bool(ok), nil
}

func wordInfo(info func(w *Word) Value) func(vm *VM) error {
	return func(vm *VM) error {
		v, err := vm.pop()
		if err != nil {
			return err
		}
		ref, ok := v.(WordRef)
		if !ok {
			return typeError{"word reference", v}
		}
		w, err := vm.Lookup(string(ref))
		if err != nil {
			return err
		}
		vm.push(info(w))
		return nil
	}
}

// withLock releases the lock on every exit path, errors included.
func (vm *VM) withLock() error {
	lv, qv, err := vm.stack.Pop2()
	if err != nil {
		return err
	}
	lk, ok := lv.(*Lock)
	if !ok {
		return typeError{"lock", lv}
	}
	q, err := asInvocable(qv)
	if err != nil {
		return err
	}
	if err := lk.acquire(vm); err != nil {
		return err
	}
	defer lk.release()
	return q.invoke(vm)
}

// acquire takes lk for vm, waiting no longer than vm's run context allows.
// A VM already holding lk just deepens its hold.
func (lk *Lock) acquire(vm *VM) error {
	lk.mu.Lock()
	if lk.owner == vm {
		lk.held++
		lk.mu.Unlock()
		return nil
	}
	lk.mu.Unlock()

	select {
	case lk.sem <- struct{}{}:
	case <-vm.ctx.Done():
		return vm.ctx.Err()
	}
	lk.mu.Lock()
	lk.owner, lk.held = vm, 1
	lk.mu.Unlock()
	return nil
}

func (lk *Lock) release() {
	lk.mu.Lock()
	defer lk.mu.Unlock()
	if lk.held--; lk.held == 0 {
		lk.owner = nil
		<-lk.sem
	}
}

//// arithmetic

func numeric(a, b Value) (ai, bi Int, af, bf Float, isInt bool, err error) {
	switch a := a.(type) {
	case Int:
		switch b := b.(type) {
		case Int:
			return a, b, 0, 0, true, nil
		case Float:
			return 0, 0, Float(a), b, false, nil
		}
		return 0, 0, 0, 0, false, typeError{"number", b}
	case Float:
		switch b := b.(type) {
		case Int:
			return 0, 0, a, Float(b), false, nil
		case Float:
			return 0, 0, a, b, false, nil
		}
		return 0, 0, 0, 0, false, typeError{"number", b}
	}
	return 0, 0, 0, 0, false, typeError{"number", a}
}

func add(a, b Value) (Value, error) {
	ai, bi, af, bf, isInt, err := numeric(a, b)
	if err != nil {
		return nil, err
	} else if isInt {
		return ai + bi, nil
	}
	return af + bf, nil
}

func sub(a, b Value) (Value, error) {
	ai, bi, af, bf, isInt, err := numeric(a, b)
	if err != nil {
		return nil, err
	} else if isInt {
		return ai - bi, nil
	}
	return af - bf, nil
}

func mul(a, b Value) (Value, error) {
	ai, bi, af, bf, isInt, err := numeric(a, b)
	if err != nil {
		return nil, err
	} else if isInt {
		return ai * bi, nil
	}
	return af * bf, nil
}

// div truncates integer quotients.
func div(a, b Value) (Value, error) {
	ai, bi, af, bf, isInt, err := numeric(a, b)
	if err != nil {
		return nil, err
	} else if isInt {
		if bi == 0 {
			return nil, errDivideByZero
		}
		return ai / bi, nil
	}
	return af / bf, nil
}

func mod(a, b Value) (Value, error) {
	ai, bi, af, bf, isInt, err := numeric(a, b)
	if err != nil {
		return nil, err
	} else if isInt {
		if bi == 0 {
			return nil, errDivideByZero
		}
		return ai % bi, nil
	}
	return Float(math.Mod(float64(af), float64(bf))), nil
}

func compareWith(test func(c int) bool) func(a, b Value) (Value, error) {
	return func(a, b Value) (Value, error) {
		if as, ok := a.(Str); ok {
			bs, ok := b.(Str)
			if !ok {
				return nil, typeError{"string", b}
			}
			return Bool(test(strings.Compare(string(as), string(bs)))), nil
		}
		ai, bi, af, bf, isInt, err := numeric(a, b)
		if err != nil {
			return nil, err
		}
		var c int
		switch {
		case isInt && ai < bi, !isInt && af < bf:
			c = -1
		case isInt && ai > bi, !isInt && af > bf:
			c = 1
		}
		return Bool(test(c)), nil
	}
}

//// collections

func count(a Value) (Value, error) {
	elems, err := elements(a)
	return Int(len(elems)), err
}

func first(a Value) (Value, error) {
	elems, err := elements(a)
	if err != nil || len(elems) == 0 {
		return Nil{}, err
	}
	return elems[0], nil
}

func rest(a Value) (Value, error) {
	elems, err := elements(a)
	if err != nil || len(elems) == 0 {
		return Vector{}, err
	}
	return append(Vector{}, elems[1:]...), nil
}

func nth(a, b Value) (Value, error) {
	elems, err := elements(a)
	if err != nil {
		return nil, err
	}
	i, ok := b.(Int)
	if !ok {
		return nil, typeError{"int", b}
	}
	if i < 0 || int(i) >= len(elems) {
		return nil, fmt.Errorf("index %v out of range for %v elements", i, len(elems))
	}
	return elems[i], nil
}

func conj(a, b Value) (Value, error) {
	elems, err := elements(a)
	if err != nil {
		return nil, err
	}
	return append(append(make(Vector, 0, len(elems)+1), elems...), b), nil
}

func concat(a, b Value) (Value, error) {
	as, err := elements(a)
	if err != nil {
		return nil, err
	}
	bs, err := elements(b)
	if err != nil {
		return nil, err
	}
	return append(append(make(Vector, 0, len(as)+len(bs)), as...), bs...), nil
}

func rangeN(a Value) (Value, error) {
	n, ok := a.(Int)
	if !ok {
		return nil, typeError{"int", a}
	}
	vec := make(Vector, 0, max(int(n), 0))
	for i := Int(0); i < n; i++ {
		vec = append(vec, i)
	}
	return vec, nil
}
