package main

import (
	"errors"
	"fmt"
)

var (
	// ErrStackUnderflow is matched by every failed pop or peek.
	ErrStackUnderflow = errors.New("stack underflow")

	errDivideByZero = errors.New("divide by zero")
	errIncomplete   = errors.New("incomplete input")
)

type underflowError struct{ need, have int }

func (err underflowError) Error() string {
	if err.need == 1 {
		return ErrStackUnderflow.Error()
	}
	return fmt.Sprintf("%v: need %v values, have %v", ErrStackUnderflow, err.need, err.have)
}

func (err underflowError) Is(target error) bool { return target == ErrStackUnderflow }

type unknownWordError string

func (name unknownWordError) Error() string { return fmt.Sprintf("unknown word %q", string(name)) }

type malformedClausesError int

func (n malformedClausesError) Error() string {
	return fmt.Sprintf("cond clauses must be predicate/action pairs, have %v values", int(n))
}

type arityError struct {
	name      string
	want, got int
}

func (err arityError) Error() string {
	return fmt.Sprintf("%v takes %v arguments, applied to %v", err.name, err.want, err.got)
}

type typeError struct {
	want string
	got  Value
}

func (err typeError) Error() string {
	return fmt.Sprintf("expected %v, got %v %v", err.want, typeName(err.got), err.got)
}

type depthError int

func (limit depthError) Error() string {
	return fmt.Sprintf("evaluation depth limit %v exceeded", int(limit))
}

// wordError labels an error with the innermost word it was raised in.
type wordError struct {
	word string
	err  error
}

func (err wordError) Error() string { return fmt.Sprintf("%v: %v", err.word, err.err) }
func (err wordError) Unwrap() error { return err.err }

func inWord(name string, err error) error {
	var we wordError
	if err == nil || errors.As(err, &we) {
		return err
	}
	return wordError{name, err}
}
