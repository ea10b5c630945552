package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlpinney/gershwin/internal/fileinput"
)

func readString(src string) ([]form, error) {
	var in fileinput.Input
	in.Enqueue(fileinput.NamedString("test", src))
	rd := termReader{in: &in}
	return rd.readAll()
}

func formTerms(forms []form) []Term {
	var terms []Term
	for _, f := range forms {
		if f.Term != nil {
			terms = append(terms, f.Term)
		}
	}
	return terms
}

func TestReader_terms(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want []Term
	}{
		{"empty", "  \n\t", nil},
		{"ints", "1 -2 +3", []Term{lit(Int(1)), lit(Int(-2)), lit(Int(3))}},
		{"floats", "1.5 -0.25 .5 1e3", []Term{lit(Float(1.5)), lit(Float(-0.25)), lit(Float(0.5)), lit(Float(1000))}},
		{"words", "dup - -rot bi* .s 2dup", words("dup", "-", "-rot", "bi*", ".s", "2dup")},
		{"constants", "nil true false", []Term{lit(Nil{}), lit(Bool(true)), lit(Bool(false))}},
		{"strings", `"a b" "q\"x" "line\n"`, []Term{lit(Str("a b")), lit(Str(`q"x`)), lit(Str("line\n"))}},
		{"keyword", ":passed", []Term{lit(Keyword("passed"))}},
		{"word ref", `\dup`, []Term{lit(WordRef("dup"))}},
		{"quotation", "#[ 1 + ]", []Term{quoteLit(lit(Int(1)), call("+"))}},
		{"nested quotation", "#[ #[ dup ] dip ]", []Term{quoteLit(quoteLit(call("dup")), call("dip"))}},
		{"tight brackets", "#[dup]", []Term{quoteLit(call("dup"))}},
		{"empty quotation", "#[ ]", []Term{quoteLit()}},
		{"vector", `[1 "a" :k [2]]`, []Term{lit(Vector{Int(1), Str("a"), Keyword("k"), Vector{Int(2)}})}},
		{"empty vector", "[]", []Term{lit(Vector{})}},
		{"comment", "1 ( a comment #[ ) 2", []Term{lit(Int(1)), lit(Int(2))}},
		{"dot is a word", "1 .", []Term{lit(Int(1)), call(".")}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			forms, err := readString(tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.want, formTerms(forms))
		})
	}
}

func TestReader_definitions(t *testing.T) {
	forms, err := readString(lines(
		`: sq "square x" [x -- x*x] dup * ;`,
		`: bare 1 ;`,
		`: empty ;`,
		`: lead [1 2] count ;`,
		`: tight [x --] drop ;`,
		`5 sq`,
	))
	require.NoError(t, err)
	require.Len(t, forms, 7)

	assert.Equal(t, &Definition{
		Name: "sq", Doc: "square x", Effect: "[x -- x*x]",
		Body: words("dup", "*"),
		Loc:  fileinput.Location{Name: "test", Line: 1},
	}, forms[0].Def)
	assert.Equal(t, []Term{lit(Int(1))}, forms[1].Def.Body)
	assert.Equal(t, "", forms[1].Def.Doc)
	assert.Empty(t, forms[2].Def.Body)
	assert.Equal(t, []Term{lit(Vector{Int(1), Int(2)}), call("count")}, forms[3].Def.Body, "bracket without -- is a vector")
	assert.Equal(t, "", forms[3].Def.Effect)
	assert.Equal(t, "[x --]", forms[4].Def.Effect)
	assert.Equal(t, lit(Int(5)), forms[5].Term)
	assert.Equal(t, fileinput.Location{Name: "test", Line: 6}, forms[6].Loc)
}

func TestReader_errors(t *testing.T) {
	for _, tc := range []struct {
		name       string
		src        string
		incomplete bool
		mess       string
	}{
		{"open quotation", "#[ 1 2", true, "test:1: unterminated quotation: incomplete input"},
		{"open vector", "[ 1", true, "test:1: unterminated vector: incomplete input"},
		{"open definition", ": foo 1 2\n", true, "test:1: unterminated definition: incomplete input"},
		{"open string", `"abc`, true, "test:1: unterminated string: incomplete input"},
		{"open comment", "( abc", true, "test:1: unterminated comment: incomplete input"},
		{"bare name", ":", true, "test:1: unterminated definition: incomplete input"},
		{"stray close", "1 ]", false, `test:1: unexpected "]"`},
		{"stray terminator", "\n;", false, `test:2: unexpected ";"`},
		{"nested definition", ": a : b ; ;", false, "test:1: definitions may not nest"},
		{"word in vector", "[1 dup]", false, `test:1: vector elements must be literals, got "dup"`},
		{"bad name", ": ; ;", false, `test:1: invalid word name ";"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			forms, err := readString(tc.src)
			assert.Nil(t, forms)
			assert.EqualError(t, err, tc.mess)
			assert.Equal(t, tc.incomplete, errors.Is(err, errIncomplete))
		})
	}
}

func TestReader_prelude(t *testing.T) {
	var buf bytes.Buffer
	_, err := prelude.WriteTo(&buf)
	require.NoError(t, err)
	var in fileinput.Input
	in.Enqueue(fileinput.Named(prelude.Name(), &buf))
	rd := termReader{in: &in}
	forms, err := rd.readAll()
	require.NoError(t, err)
	for _, f := range forms {
		if assert.NotNil(t, f.Def, "prelude holds only definitions, got %v at %v", f.Term, f.Loc) {
			assert.NotEmpty(t, f.Def.Effect, "%v has a stack effect", f.Def.Name)
		}
	}
}
