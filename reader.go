package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/tlpinney/gershwin/internal/fileinput"
)

// The reader turns source text into terms and definitions:
//
//	program    := form*
//	form       := definition | term
//	definition := ":" NAME [STRING] [effect] term* ";"
//	effect     := "[" token* "--" token* "]"
//	term       := "#[" term* "]" | "[" literal* "]" | literal | WORD
//	literal    := INT | FLOAT | STRING | ":"KEYWORD | "\"NAME | nil | true | false
//
// Tokens are separated by whitespace; brackets also delimit tokens. A
// definition always ends with ";" and a lone "(" starts a comment running to
// the next ")".

type form struct {
	Term Term
	Def  *Definition
	Loc  fileinput.Location
}

type termReader struct {
	in  *fileinput.Input
	loc fileinput.Location

	peeked  rune
	hasPeek bool
}

type syntaxError struct {
	loc  fileinput.Location
	mess string
}

func (err syntaxError) Error() string { return fmt.Sprintf("%v: %v", err.loc, err.mess) }

func (rd *termReader) errorf(mess string, args ...interface{}) error {
	return syntaxError{rd.loc, fmt.Sprintf(mess, args...)}
}

func (rd *termReader) incomplete(what string) error {
	return fmt.Errorf("%v: unterminated %v: %w", rd.loc, what, errIncomplete)
}

// read returns the next form, or io.EOF once the input is exhausted.
func (rd *termReader) read() (form, error) {
	tok, err := rd.token()
	if err != nil {
		return form{}, err
	}
	f := form{Loc: rd.loc}
	if tok == ":" {
		f.Def, err = rd.definition()
		if f.Def != nil {
			f.Def.Loc = f.Loc
		}
	} else {
		f.Term, err = rd.term(tok)
	}
	return f, err
}

// readAll reads every remaining form; nothing is returned on error, so that
// incomplete input can be retried once more text is available.
func (rd *termReader) readAll() ([]form, error) {
	var forms []form
	for {
		f, err := rd.read()
		if err == io.EOF {
			return forms, nil
		} else if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
}

func (rd *termReader) definition() (*Definition, error) {
	name, err := rd.token()
	if err == io.EOF {
		return nil, rd.incomplete("definition")
	} else if err != nil {
		return nil, err
	}
	switch {
	case isDelimiter(name):
		return nil, rd.errorf("invalid word name %q", name)
	case strings.HasPrefix(name, `"`):
		return nil, rd.errorf("word name must not be a string: %v", name)
	}
	def := &Definition{Name: name}

	tok, err := rd.bodyToken()
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(tok, `"`) {
		doc, err := parseLiteral(tok)
		if err != nil {
			return nil, rd.errorf("%v", err)
		}
		def.Doc = string(doc.(Str))
		if tok, err = rd.bodyToken(); err != nil {
			return nil, err
		}
	}

	if tok == "[" {
		toks, err := rd.bracketed()
		if err != nil {
			return nil, err
		}
		if isEffect(toks) {
			def.Effect = "[" + strings.Join(toks, " ") + "]"
		} else {
			vec, err := rd.vector(sliceTokens(toks))
			if err != nil {
				return nil, err
			}
			def.Body = append(def.Body, Lit{vec})
		}
		if tok, err = rd.bodyToken(); err != nil {
			return nil, err
		}
	}

	for tok != ";" {
		t, err := rd.term(tok)
		if err != nil {
			return nil, err
		}
		def.Body = append(def.Body, t)
		if tok, err = rd.bodyToken(); err != nil {
			return nil, err
		}
	}
	return def, nil
}

func (rd *termReader) bodyToken() (string, error) {
	tok, err := rd.token()
	if err == io.EOF {
		return "", rd.incomplete("definition")
	}
	return tok, err
}

func (rd *termReader) term(tok string) (Term, error) {
	switch tok {
	case "#[":
		return rd.quotation()
	case "[":
		toks, err := rd.bracketed()
		if err != nil {
			return nil, err
		}
		vec, err := rd.vector(sliceTokens(toks))
		if err != nil {
			return nil, err
		}
		return Lit{vec}, nil
	case ":":
		return nil, rd.errorf("definitions may not nest")
	case ";", "]":
		return nil, rd.errorf("unexpected %q", tok)
	}
	if v, err := parseLiteral(tok); err != nil {
		return nil, rd.errorf("%v", err)
	} else if v != nil {
		return Lit{v}, nil
	}
	return Call{tok}, nil
}

func (rd *termReader) quotation() (Term, error) {
	var terms []Term
	for {
		tok, err := rd.token()
		if err == io.EOF {
			return nil, rd.incomplete("quotation")
		} else if err != nil {
			return nil, err
		}
		if tok == "]" {
			return QuoteLit{terms}, nil
		}
		t, err := rd.term(tok)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
}

// bracketed collects raw tokens up to the "]" matching an already read "[".
func (rd *termReader) bracketed() ([]string, error) {
	var toks []string
	for level := 0; ; {
		tok, err := rd.token()
		if err == io.EOF {
			return nil, rd.incomplete("vector")
		} else if err != nil {
			return nil, err
		}
		switch tok {
		case "[", "#[":
			level++
		case "]":
			if level == 0 {
				return toks, nil
			}
			level--
		}
		toks = append(toks, tok)
	}
}

func (rd *termReader) vector(next func() (string, bool)) (Vector, error) {
	vec := Vector{}
	for {
		tok, ok := next()
		if !ok || tok == "]" {
			return vec, nil
		}
		if tok == "[" {
			sub, err := rd.vector(next)
			if err != nil {
				return nil, err
			}
			vec = append(vec, sub)
			continue
		}
		v, err := parseLiteral(tok)
		if err != nil {
			return nil, rd.errorf("%v", err)
		} else if v == nil {
			return nil, rd.errorf("vector elements must be literals, got %q", tok)
		}
		vec = append(vec, v)
	}
}

func sliceTokens(toks []string) func() (string, bool) {
	return func() (string, bool) {
		if len(toks) == 0 {
			return "", false
		}
		tok := toks[0]
		toks = toks[1:]
		return tok, true
	}
}

func isEffect(toks []string) bool {
	for _, tok := range toks {
		if tok == "--" {
			return true
		}
	}
	return false
}

func isDelimiter(tok string) bool {
	switch tok {
	case ":", ";", "[", "]", "#[":
		return true
	}
	return false
}

// parseLiteral returns the value denoted by tok, or nil if tok names a word.
func parseLiteral(tok string) (Value, error) {
	switch tok {
	case "nil":
		return Nil{}, nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	switch r := tok[0]; {
	case r == '"':
		s, err := strconv.Unquote(strings.ReplaceAll(tok, "\n", `\n`))
		if err != nil {
			return nil, fmt.Errorf("invalid string %v", tok)
		}
		return Str(s), nil
	case r == ':' && len(tok) > 1:
		return Keyword(tok[1:]), nil
	case r == '\\' && len(tok) > 1:
		return WordRef(tok[1:]), nil
	case !looksNumeric(tok):
		return nil, nil
	}
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return Int(n), nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return Float(f), nil
	}
	return nil, nil
}

func looksNumeric(tok string) bool {
	s := strings.TrimLeft(tok, "+-")
	s = strings.TrimPrefix(s, ".")
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}

// token returns the next token, skipping whitespace and comments. String
// tokens are returned whole, quotes included.
func (rd *termReader) token() (string, error) {
	for {
		tok, err := rd.rawToken()
		if err != nil || tok != "(" {
			return tok, err
		}
		for tok != ")" {
			if tok, err = rd.rawToken(); err == io.EOF {
				return "", rd.incomplete("comment")
			} else if err != nil {
				return "", err
			}
		}
	}
}

func (rd *termReader) rawToken() (string, error) {
	r, err := rd.skipSpace()
	if err != nil {
		return "", err
	}
	rd.loc = rd.in.Location()

	switch r {
	case '"':
		return rd.stringToken()
	case '[', ']':
		return string(r), nil
	}

	var sb strings.Builder
	sb.WriteRune(r)
	if r == '#' {
		if next, err := rd.readRune(); err == nil {
			if next == '[' {
				return "#[", nil
			}
			rd.unreadRune(next)
		} else if err != io.EOF {
			return "", err
		}
	}
	for {
		r, err := rd.readRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", err
		}
		if unicode.IsSpace(r) {
			break
		}
		if r == '[' || r == ']' {
			rd.unreadRune(r)
			break
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

func (rd *termReader) stringToken() (string, error) {
	var sb strings.Builder
	sb.WriteByte('"')
	for escaped := false; ; {
		r, err := rd.readRune()
		if err == io.EOF {
			return "", rd.incomplete("string")
		} else if err != nil {
			return "", err
		}
		sb.WriteRune(r)
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			return sb.String(), nil
		}
	}
}

func (rd *termReader) skipSpace() (rune, error) {
	for {
		r, err := rd.readRune()
		if err != nil {
			return 0, err
		}
		if !unicode.IsSpace(r) {
			return r, nil
		}
	}
}

func (rd *termReader) readRune() (rune, error) {
	if rd.hasPeek {
		rd.hasPeek = false
		return rd.peeked, nil
	}
	r, _, err := rd.in.ReadRune()
	if errors.Is(err, io.EOF) {
		return 0, io.EOF
	}
	return r, err
}

func (rd *termReader) unreadRune(r rune) {
	rd.peeked, rd.hasPeek = r, true
}
