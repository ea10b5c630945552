package main

import "strings"

// Term is the unit of evaluation. There are exactly three kinds: a literal
// value, a word reference, and a quotation literal.
type Term interface {
	String() string
	term()
}

// Lit pushes its value.
type Lit struct{ Value Value }

// Call resolves a word by name and invokes it.
type Call struct{ Name string }

// QuoteLit pushes a Quotation of its terms; it never runs them.
type QuoteLit struct{ Terms []Term }

func (Lit) term()      {}
func (Call) term()     {}
func (QuoteLit) term() {}

func (t Lit) String() string  { return t.Value.String() }
func (t Call) String() string { return t.Name }

func (t QuoteLit) String() string {
	var sb strings.Builder
	sb.WriteString("#[")
	for _, sub := range t.Terms {
		sb.WriteByte(' ')
		sb.WriteString(sub.String())
	}
	sb.WriteString(" ]")
	return sb.String()
}

func termsEqual(a, b []Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		switch at := a[i].(type) {
		case Lit:
			bt, ok := b[i].(Lit)
			if !ok || !Equal(at.Value, bt.Value) {
				return false
			}
		case Call:
			if bt, ok := b[i].(Call); !ok || at.Name != bt.Name {
				return false
			}
		case QuoteLit:
			bt, ok := b[i].(QuoteLit)
			if !ok || !termsEqual(at.Terms, bt.Terms) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Term construction shorthands, mostly for Go callers and tests.

func lit(v Value) Term            { return Lit{v} }
func call(name string) Term       { return Call{name} }
func quoteLit(terms ...Term) Term { return QuoteLit{terms} }

func words(names ...string) []Term {
	terms := make([]Term, len(names))
	for i, name := range names {
		terms[i] = Call{name}
	}
	return terms
}
