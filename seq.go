package main

// Sequence combinators push each element in turn and invoke a quotation on
// it; one element is fully processed before the next is pushed.

func init() {
	primitives = append(primitives,
		primitive{"map", "[coll q -- vec]", "collect q of each element", (*VM).mapWord},
		primitive{"filter", "[coll q -- vec]", "keep elements for which q is truthy", (*VM).filter},
		primitive{"remove", "[coll q -- vec]", "drop elements for which q is truthy", (*VM).remove},
		primitive{"each", "[coll q --]", "run q on each element", (*VM).each},
		primitive{"reduce", "[coll q -- x]", "fold the elements pairwise with q", (*VM).reduce},
		primitive{"reduce-with", "[coll acc q -- x]", "fold the elements with q starting from acc", (*VM).reduceWith},
		primitive{"some", "[coll q -- x]", "the first element for which q is truthy, or nil", (*VM).some},
		primitive{"times", "[n q --]", "run q n times", (*VM).times},
	)
}

// elements returns the values of a host collection: vectors, strings (one
// single rune string per element) and nil (empty).
func elements(coll Value) ([]Value, error) {
	switch coll := coll.(type) {
	case Vector:
		return coll, nil
	case Str:
		vals := make([]Value, 0, len(coll))
		for _, r := range string(coll) {
			vals = append(vals, Str(string(r)))
		}
		return vals, nil
	case Nil:
		return nil, nil
	}
	return nil, typeError{"collection", coll}
}

func (vm *VM) popSeqArgs() ([]Value, Invocable, error) {
	coll, qv, err := vm.stack.Pop2()
	if err != nil {
		return nil, nil, err
	}
	elems, err := elements(coll)
	if err != nil {
		return nil, nil, err
	}
	q, err := asInvocable(qv)
	if err != nil {
		return nil, nil, err
	}
	return elems, q, nil
}

// apply pushes args, invokes q, and pops its result.
func (vm *VM) apply(q Invocable, args ...Value) (Value, error) {
	for _, arg := range args {
		vm.push(arg)
	}
	if err := q.invoke(vm); err != nil {
		return nil, err
	}
	return vm.pop()
}

func (vm *VM) mapWord() error {
	elems, q, err := vm.popSeqArgs()
	if err != nil {
		return err
	}
	out := make(Vector, 0, len(elems))
	for _, el := range elems {
		v, err := vm.apply(q, el)
		if err != nil {
			return err
		}
		out = append(out, v)
	}
	vm.push(out)
	return nil
}

func (vm *VM) filter() error { return vm.partition(true) }
func (vm *VM) remove() error { return vm.partition(false) }

func (vm *VM) partition(want bool) error {
	elems, q, err := vm.popSeqArgs()
	if err != nil {
		return err
	}
	out := Vector{}
	for _, el := range elems {
		v, err := vm.apply(q, el)
		if err != nil {
			return err
		}
		if Truthy(v) == want {
			out = append(out, el)
		}
	}
	vm.push(out)
	return nil
}

func (vm *VM) each() error {
	elems, q, err := vm.popSeqArgs()
	if err != nil {
		return err
	}
	for _, el := range elems {
		vm.push(el)
		if err := q.invoke(vm); err != nil {
			return err
		}
	}
	return nil
}

// reduce leaves nil for an empty collection and the sole element of a
// singleton, invoking q for neither; otherwise q folds left to right starting
// from the first two elements.
func (vm *VM) reduce() error {
	elems, q, err := vm.popSeqArgs()
	if err != nil {
		return err
	}
	switch len(elems) {
	case 0:
		vm.push(Nil{})
		return nil
	case 1:
		vm.push(elems[0])
		return nil
	}
	return vm.fold(q, elems[0], elems[1:])
}

func (vm *VM) reduceWith() error {
	coll, acc, qv, err := vm.stack.Pop3()
	if err != nil {
		return err
	}
	elems, err := elements(coll)
	if err != nil {
		return err
	}
	q, err := asInvocable(qv)
	if err != nil {
		return err
	}
	return vm.fold(q, acc, elems)
}

func (vm *VM) fold(q Invocable, acc Value, elems []Value) (err error) {
	for _, el := range elems {
		if acc, err = vm.apply(q, acc, el); err != nil {
			return err
		}
	}
	vm.push(acc)
	return nil
}

func (vm *VM) some() error {
	elems, q, err := vm.popSeqArgs()
	if err != nil {
		return err
	}
	for _, el := range elems {
		v, err := vm.apply(q, el)
		if err != nil {
			return err
		}
		if Truthy(v) {
			vm.push(el)
			return nil
		}
	}
	vm.push(Nil{})
	return nil
}

func (vm *VM) times() error {
	nv, qv, err := vm.stack.Pop2()
	if err != nil {
		return err
	}
	n, ok := nv.(Int)
	if !ok {
		return typeError{"int", nv}
	}
	q, err := asInvocable(qv)
	if err != nil {
		return err
	}
	for i := Int(0); i < n; i++ {
		if err := q.invoke(vm); err != nil {
			return err
		}
	}
	return nil
}
