/* Package main: gershwin, a concatenative stack language

Every value flows through one shared stack. Words are named procedures that
pop their arguments and push their results; a program is a sequence of words
and literals read left to right:

	2 3 + println  ( prints 5 )

Quotations are deferred code, pushed as a value rather than run:

	#[ 2 * ]

and combinators are words that take quotations as arguments. Two of them,
dip and keep, carry the whole combinator library:

	x q dip   runs q with x removed, then puts x back on top
	x q keep  runs q with x still visible, then puts a copy of x back

From those, plus a handful of stack shuffles, the prelude builds the cleave
family (bi tri: several quotations applied to one value), the spread family
(bi* tri*: one quotation per value) and the apply family (bi& tri&: one
quotation applied to several values). Each runs its quotations strictly left
to right.

Definitions name a word with an optional doc string and stack effect:

	: square "multiply x by itself" [x -- x*x] dup * ;

Redefining a word affects every later invocation of it, including from words
defined earlier.

Testing

unit-test compares an expected value with an actual one, invoking either
side that is a quotation:

	"42" #[ 42 str ] unit-test

run-suite runs a quotation of unit-tests, reports how many passed or failed,
and leaves :passed or :failed:

	#[
	    6 #[ [1 2 3] #[ + ] reduce ] unit-test
	    [1 2] #[ [1 2] #[ ] map ] unit-test
	] run-suite

Embedding

New builds a VM; Run evaluates its queued input while EvalString evaluates a
single chunk of text. Go functions join the dictionary with WithHost or
VM.DefineHost; each declares a fixed arity, and its arguments arrive in the
order they were pushed.

*/
package main
