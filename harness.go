package main

import "fmt"

func init() {
	primitives = append(primitives,
		primitive{"unit-test", "[expected actual -- ?]", "compare two values, invoking either side that is invocable", (*VM).unitTest},
		primitive{"run-suite", "[q -- :passed|:failed]", "run q, collecting and reporting its unit-test results", (*VM).runSuite},
	)
}

// resolve yields v itself, or the value left by invoking it.
func (vm *VM) resolve(v Value) (Value, error) {
	inv, ok := v.(Invocable)
	if !ok {
		return v, nil
	}
	return vm.apply(inv)
}

// unitTest resolves the actual side first, then the expected side. When both
// results are themselves invocable, each is invoked one more level before the
// comparison.
func (vm *VM) unitTest() error {
	expected, actual, err := vm.stack.Pop2()
	if err != nil {
		return err
	}
	if actual, err = vm.resolve(actual); err != nil {
		return err
	}
	if expected, err = vm.resolve(expected); err != nil {
		return err
	}
	_, expInv := expected.(Invocable)
	_, actInv := actual.(Invocable)
	if expInv && actInv {
		if actual, err = vm.resolve(actual); err != nil {
			return err
		}
		if expected, err = vm.resolve(expected); err != nil {
			return err
		}
	}
	ok := Equal(expected, actual)
	if !ok {
		vm.logf("!", "unit-test: expected %v, got %v", expected, actual)
	}
	vm.results = append(vm.results, ok)
	vm.push(Bool(ok))
	return nil
}

// runSuite collects results into a fresh set, restoring the enclosing set
// afterwards so that suites nest. Whatever the suite leaves on the stack is
// discarded before the marker is pushed.
func (vm *VM) runSuite() error {
	q, err := vm.popInvocable()
	if err != nil {
		return err
	}
	outer := vm.results
	vm.results = []bool{}
	defer func() { vm.results = outer }()

	base := vm.stack.Len()
	if err := q.invoke(vm); err != nil {
		return err
	}
	if vm.stack.Len() > base {
		vm.stack.truncate(base)
	}

	results := make(Vector, len(vm.results))
	failed := 0
	for i, ok := range vm.results {
		results[i] = Bool(ok)
		if !ok {
			failed++
		}
	}
	if failed == 0 {
		err = vm.write(fmt.Sprintf("%v tests PASSED\n", len(results)))
		vm.push(Keyword("passed"))
	} else {
		err = vm.write(fmt.Sprintf("%v of %v tests FAILED\n%v\n", failed, len(results), results))
		vm.push(Keyword("failed"))
	}
	return err
}
