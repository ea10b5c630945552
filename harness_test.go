package main

import "testing"

func Test_harness(t *testing.T) {
	vmTestCases{
		progTest("stringified", `"42" #[ 42 str ] unit-test`, Bool(true)),
		progTest("str2", `"blue 42" #[ "blue " 42 str2 ] unit-test`, Bool(true)),
		progTest("plain values", "1 2 unit-test 3 3 unit-test", Bool(false), Bool(true)),
		progTest("both quoted", "#[ 1 2 + ] #[ 3 ] unit-test", Bool(true)),
		progTest("quotation results invoked once more", "#[ #[ 1 ] ] #[ #[ 1 ] ] unit-test", Bool(true)),
		progTest("quotation result against value", "#[ 1 ] #[ #[ 1 ] ] unit-test", Bool(false)),
		progTest("structural", "[1 [2]] #[ [1] [2] conj ] unit-test", Bool(true)),

		vmTest("actual before expected").
			withInput(`#[ "e" print 1 ] #[ "a" print 1 ] unit-test`).
			expectOutput("ae").expectStack(Bool(true)),
		vmTest("results accumulate").
			withInput("1 #[ 1 ] unit-test 2 #[ 3 ] unit-test").
			expectResults(true, false).
			expectStack(Bool(true), Bool(false)),

		vmTest("suite passes").
			withInput(lines(
				`#[`,
				`	"42" #[ 42 str ] unit-test`,
				`	"blue 42" #[ "blue " 42 str2 ] unit-test`,
				`	6 #[ [1 2 3] #[ + ] reduce ] unit-test`,
				`] run-suite`,
			)).
			expectOutput("3 tests PASSED\n").
			expectStack(Keyword("passed")).
			expectResults(),
		vmTest("suite fails").
			withInput(lines(
				`#[`,
				`	"42" #[ 42 str ] unit-test`,
				`	"blue 42" #[ "blue " 42 str2 ] unit-test`,
				`	7 #[ [1 2 3] #[ + ] reduce ] unit-test`,
				`] run-suite`,
			)).
			expectOutput("1 of 3 tests FAILED\n[true true false]\n").
			expectStack(Keyword("failed")),
		vmTest("empty suite").
			withInput("#[ ] run-suite").
			expectOutput("0 tests PASSED\n").
			expectStack(Keyword("passed")),
		vmTest("suites nest").
			withInput(lines(
				`#[`,
				`	1 #[ 1 ] unit-test`,
				`	#[ 2 #[ 3 ] unit-test ] run-suite drop`,
				`] run-suite`,
			)).
			expectOutput("1 of 1 tests FAILED\n[false]\n1 tests PASSED\n").
			expectStack(Keyword("passed")),
		vmTest("suite keeps the stack below it").
			withInput(`:below #[ 1 #[ 1 ] unit-test 99 ] run-suite`).
			expectStack(Keyword("below"), Keyword("passed")),
		vmTest("suite restores outer results").
			withInput("1 #[ 1 ] unit-test drop #[ 1 #[ 2 ] unit-test ] run-suite drop").
			expectResults(true).
			expectStack(),
		vmTest("suite error").
			withInput("#[ 1 #[ 1 ] unit-test frob ] run-suite").
			expectError(unknownWordError("frob")).
			expectResults(),
	}.run(t)
}
