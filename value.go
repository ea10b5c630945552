package main

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Value is anything that may live on the stack. The set of implementations is
// closed: host values (Nil, Bool, Int, Float, Str, Keyword, Vector), the
// invocables (Quotation, WordRef, *HostFunc) and *Lock.
type Value interface {
	fmt.Stringer
	value()
}

// Invocable values are those that invoke, and every combinator, may run.
type Invocable interface {
	Value
	invoke(vm *VM) error
}

// Nil is the absent value.
type Nil struct{}

type (
	Bool    bool
	Int     int64
	Float   float64
	Str     string
	Keyword string
	Vector  []Value
)

// Quotation is an immutable sequence of terms; a value until invoked.
type Quotation struct{ terms []Term }

// WordRef names a dictionary word as a value; the name resolves only when
// the reference is invoked.
type WordRef string

// Lock is a host mutual exclusion primitive, used through with-lock. It is
// reentrant for the VM holding it.
type Lock struct {
	id  int
	sem chan struct{}

	mu    sync.Mutex
	owner *VM
	held  int
}

func newLock(id int) *Lock { return &Lock{id: id, sem: make(chan struct{}, 1)} }

func (Nil) value()       {}
func (Bool) value()      {}
func (Int) value()       {}
func (Float) value()     {}
func (Str) value()       {}
func (Keyword) value()   {}
func (Vector) value()    {}
func (Quotation) value() {}
func (WordRef) value()   {}
func (*HostFunc) value() {}
func (*Lock) value()     {}

// Quote constructs a quotation from terms.
func Quote(terms ...Term) Quotation { return Quotation{terms: terms} }

// Terms returns a copy of the quotation's terms.
func (q Quotation) Terms() []Term { return append([]Term(nil), q.terms...) }

// Len returns the number of terms in the quotation.
func (q Quotation) Len() int { return len(q.terms) }

func (Nil) String() string { return "nil" }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

func (f Float) String() string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnI") {
		s += ".0"
	}
	return s
}

func (s Str) String() string { return strconv.Quote(string(s)) }

func (k Keyword) String() string { return ":" + string(k) }

func (v Vector) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, el := range v {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(el.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (q Quotation) String() string {
	var sb strings.Builder
	sb.WriteString("#[")
	for _, t := range q.terms {
		sb.WriteByte(' ')
		sb.WriteString(t.String())
	}
	sb.WriteString(" ]")
	return sb.String()
}

func (ref WordRef) String() string { return `\` + string(ref) }

func (lk *Lock) String() string { return fmt.Sprintf("#<lock %v>", lk.id) }

// Truthy implements host truthiness: only Nil and false are falsey; zero, the
// empty string, and empty vectors are all true.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil, Nil:
		return false
	case Bool:
		return bool(v)
	}
	return true
}

// Equal compares values structurally. Numbers of different types are never
// equal; host functions and locks compare by identity.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Vector:
		bv, ok := b.(Vector)
		if !ok || len(a) != len(bv) {
			return false
		}
		for i := range a {
			if !Equal(a[i], bv[i]) {
				return false
			}
		}
		return true
	case Quotation:
		bq, ok := b.(Quotation)
		return ok && termsEqual(a.terms, bq.terms)
	}
	return a == b
}

// toStr implements the str conversion: strings are used raw and nil becomes
// empty; everything else uses its printed form.
func toStr(v Value) string {
	switch v := v.(type) {
	case Str:
		return string(v)
	case Nil:
		return ""
	}
	return v.String()
}

func typeName(v Value) string {
	switch v.(type) {
	case Nil:
		return "nil"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Str:
		return "string"
	case Keyword:
		return "keyword"
	case Vector:
		return "vector"
	case Quotation:
		return "quotation"
	case WordRef:
		return "word"
	case *HostFunc:
		return "host-function"
	case *Lock:
		return "lock"
	}
	return fmt.Sprintf("%T", v)
}
