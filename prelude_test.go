package main

import (
	"testing"
)

func progTest(name, src string, want ...Value) vmTestCase {
	return vmTest(name).withInput(src).expectStack(want...)
}

// Test_prelude checks each layer of the combinator library, from the shuffles
// up through the boolean control words.
func Test_prelude(t *testing.T) {
	var tests vmTestCases

	// shuffles
	tests = append(tests,
		progTest("dup2", "1 2 dup2", Int(1), Int(2), Int(1), Int(2)),
		progTest("dup3", "1 2 3 dup3", Int(1), Int(2), Int(3), Int(1), Int(2), Int(3)),
		progTest("drop2", "1 2 3 drop2", Int(1)),
		progTest("drop3", "1 2 3 4 drop3", Int(1)),
		progTest("nip", "1 2 nip", Int(2)),
		progTest("nip2", "1 2 3 nip2", Int(3)),
		progTest("dupd", "1 2 dupd", Int(1), Int(1), Int(2)),
		progTest("swapd", "1 2 3 swapd", Int(2), Int(1), Int(3)),
		progTest("rot", "1 2 3 rot", Int(2), Int(3), Int(1)),
		progTest("-rot", "1 2 3 -rot", Int(3), Int(1), Int(2)),
		progTest("rot -rot", "1 2 3 rot -rot", Int(1), Int(2), Int(3)),
		vmTest("nip underflow").withInput("1 nip").expectError(ErrStackUnderflow),
	)

	// dip family
	tests = append(tests,
		progTest("dip", "1 2 #[ 10 + ] dip", Int(11), Int(2)),
		progTest("dip2", "1 2 3 #[ 10 + ] dip2", Int(11), Int(2), Int(3)),
		progTest("dip3", "1 2 3 4 #[ 10 + ] dip3", Int(11), Int(2), Int(3), Int(4)),
		progTest("dip4", "1 2 3 4 5 #[ 10 + ] dip4", Int(11), Int(2), Int(3), Int(4), Int(5)),
		progTest("dip empty quotation", `"x" #[ ] dip`, Str("x")),
	)

	// keep family
	tests = append(tests,
		progTest("keep", "2 #[ 3 * ] keep", Int(6), Int(2)),
		progTest("keep2", "2 3 #[ + ] keep2", Int(5), Int(2), Int(3)),
		progTest("keep3", "1 2 3 #[ + + ] keep3", Int(6), Int(1), Int(2), Int(3)),
	)

	// cleave
	tests = append(tests,
		progTest("bi", "5 #[ 1 + ] #[ 2 * ] bi", Int(6), Int(10)),
		progTest("bi2", "2 3 #[ + ] #[ * ] bi2", Int(5), Int(6)),
		progTest("bi3", "1 2 3 #[ + + ] #[ * * ] bi3", Int(6), Int(6)),
		progTest("tri", "5 #[ 1 + ] #[ 2 * ] #[ 3 - ] tri", Int(6), Int(10), Int(2)),
		progTest("tri2", "2 3 #[ + ] #[ * ] #[ - ] tri2", Int(5), Int(6), Int(-1)),
		progTest("tri3", "1 2 3 #[ + + ] #[ * * ] #[ - - ] tri3", Int(6), Int(6), Int(2)),
		vmTest("bi order").
			withInput(`0 #[ drop "a" print ] #[ drop "b" print ] bi`).
			expectOutput("ab").expectStack(),
		vmTest("tri order").
			withInput(`0 #[ drop "a" print ] #[ drop "b" print ] #[ drop "c" print ] tri`).
			expectOutput("abc").expectStack(),
	)

	// spread
	tests = append(tests,
		progTest("bi*", "1 2 #[ 10 + ] #[ 20 + ] bi*", Int(11), Int(22)),
		progTest("bi2*", "1 2 3 4 #[ + ] #[ * ] bi2*", Int(3), Int(12)),
		progTest("tri*", "1 2 3 #[ 10 + ] #[ 20 + ] #[ 30 + ] tri*", Int(11), Int(22), Int(33)),
		progTest("tri2*", "1 2 3 4 5 6 #[ + ] #[ * ] #[ - ] tri2*", Int(3), Int(12), Int(-1)),
		vmTest("tri* order").
			withInput(`1 2 3 #[ print ] #[ print ] #[ print ] tri*`).
			expectOutput("123").expectStack(),
	)

	// apply
	tests = append(tests,
		progTest("bi&", "1 2 #[ 10 + ] bi&", Int(11), Int(12)),
		progTest("bi2&", "1 2 3 4 #[ + ] bi2&", Int(3), Int(7)),
		progTest("tri&", "1 2 3 #[ 10 * ] tri&", Int(10), Int(20), Int(30)),
		progTest("tri2&", "1 2 3 4 5 6 #[ + ] tri2&", Int(3), Int(7), Int(11)),
		progTest("bi& is bi* with one quotation", "1 2 #[ 10 + ] #[ 10 + ] bi* 1 2 #[ 10 + ] bi&",
			Int(11), Int(12), Int(11), Int(12)),
		progTest("both? true", "1 2 #[ 0 > ] both?", Bool(true)),
		progTest("both? false", "1 -2 #[ 0 > ] both?", Bool(false)),
		progTest("either? true", "-1 2 #[ 0 > ] either?", Bool(true)),
		progTest("either? false", "-1 -2 #[ 0 > ] either?", Bool(false)),
	)

	// boolean control
	tests = append(tests,
		progTest("if-not", "true #[ 1 ] #[ 2 ] if-not", Int(2)),
		progTest("when true", "true #[ 1 ] when", Int(1)),
		progTest("when false", "false #[ 1 ] when"),
		progTest("when-not false", "false #[ 1 ] when-not", Int(1)),
		progTest("when-not true", "true #[ 1 ] when-not"),
		progTest("if* truthy keeps condition", `5 #[ 1 + ] #[ "no" ] if*`, Int(6)),
		progTest("if* falsey drops condition", `nil #[ 1 + ] #[ "no" ] if*`, Str("no")),
		progTest("when* truthy", "5 #[ 1 + ] when*", Int(6)),
		progTest("when* falsey", "false #[ 1 + ] when*"),
		progTest("cond", lines(
			`: sign #[`,
			`	#[ dup 0 < ] #[ drop "neg" ]`,
			`	#[ dup 0 = ] #[ drop "zero" ]`,
			`	:else        #[ drop "pos" ]`,
			`] cond ;`,
			`-4 sign 0 sign 7 sign`,
		), Str("neg"), Str("zero"), Str("pos")),
		progTest("cond runs predicates lazily", lines(
			`#[ #[ true ] #[ "first" ] #[ "boom" print true ] #[ "second" ] ] cond`,
		), Str("first")),
		vmTest("cond malformed before any clause").
			withInput(`#[ #[ "ran" print true ] #[ 1 ] #[ false ] ] cond`).
			expectError(malformedClausesError(3)).
			expectOutput(""),
		vmTest("cond clauses consuming the stack").
			withInput("1 2 #[ drop2 ] cond").
			expectError(ErrStackUnderflow).
			expectStack(),
		vmTest("cond clauses consuming the stack message").
			withInput("1 #[ drop ] cond").
			expectErrorContaining("cond: cond clauses consumed 1 values from beneath them: stack underflow"),
	)

	// dictionary
	tests = append(tests,
		progTest("late binding", ": f 1 ; : g f ; g : f 2 ; g", Int(1), Int(2)),
		progTest("word ref", `: twice dup + ; 4 \twice invoke`, Int(8)),
		progTest("recursion", lines(
			`: countdown [n --] dup 0 > #[ dup print 1 - countdown ] #[ drop ] if ;`,
			`3 countdown`,
		)),
		vmTest("documented").withInput("").
			expectWord("bi", "apply p then q to x", "[x p q --]").
			expectWord("dip", "run q with x removed, then restore x", "[x q -- x]"),
		vmTest("unknown word").withInput("1 2 frob").expectError(unknownWordError("frob")).expectStack(Int(1), Int(2)),
		vmTest("primitives only").withoutPrelude().withInput("1 2 dup2").expectError(unknownWordError("dup2")),
	)

	tests.run(t)
}
