package main

// Stack is the LIFO sequence of values shared by every word within one VM.
// The bottom of the stack is index 0 of values.
type Stack struct {
	values []Value
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int { return len(s.values) }

// Push places v on top of the stack.
func (s *Stack) Push(v Value) { s.values = append(s.values, v) }

// Pop removes and returns the value on top of the stack.
func (s *Stack) Pop() (Value, error) {
	i := len(s.values) - 1
	if i < 0 {
		return nil, underflowError{1, 0}
	}
	v := s.values[i]
	s.values[i] = nil
	s.values = s.values[:i]
	return v, nil
}

// Peek returns the value on top of the stack without removing it.
func (s *Stack) Peek() (Value, error) { return s.PeekAt(0) }

// PeekAt returns the value depth places below the top; depth 0 is the top.
func (s *Stack) PeekAt(depth int) (Value, error) {
	i := len(s.values) - 1 - depth
	if depth < 0 || i < 0 {
		return nil, underflowError{depth + 1, len(s.values)}
	}
	return s.values[i], nil
}

// Clear empties the stack.
func (s *Stack) Clear() {
	for i := range s.values {
		s.values[i] = nil
	}
	s.values = s.values[:0]
}

// Snapshot returns a copy of the stack values, top first.
func (s *Stack) Snapshot() []Value {
	snap := make([]Value, len(s.values))
	for i, v := range s.values {
		snap[len(snap)-1-i] = v
	}
	return snap
}

// The PopN adapters remove the top N values and return them in logical order:
// the earliest pushed first, the top of stack last. They remove nothing when
// fewer than N values are present.

// Pop2 pops [a b] returning a, b.
func (s *Stack) Pop2() (a, b Value, err error) {
	vals, err := s.popN(2)
	if err != nil {
		return nil, nil, err
	}
	return vals[0], vals[1], nil
}

// Pop3 pops [a b c] returning a, b, c.
func (s *Stack) Pop3() (a, b, c Value, err error) {
	vals, err := s.popN(3)
	if err != nil {
		return nil, nil, nil, err
	}
	return vals[0], vals[1], vals[2], nil
}

// Pop4 pops [a b c d] returning a, b, c, d.
func (s *Stack) Pop4() (a, b, c, d Value, err error) {
	vals, err := s.popN(4)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

func (s *Stack) popN(n int) ([]Value, error) {
	i := len(s.values) - n
	if i < 0 {
		return nil, underflowError{n, len(s.values)}
	}
	vals := append([]Value(nil), s.values[i:]...)
	for j := i; j < len(s.values); j++ {
		s.values[j] = nil
	}
	s.values = s.values[:i]
	return vals, nil
}

// truncate drops values until at most n remain.
func (s *Stack) truncate(n int) {
	for len(s.values) > n {
		s.Pop()
	}
}
