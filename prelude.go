package main

import (
	"bytes"
	"io"
)

// The prelude builds the combinator library in source, using nothing but the
// primitives: dip, keep, invoke, if, and the basic stack shuffles.

var prelude = preludeSource{}

type preludeSource struct{}

func (preludeSource) Name() string { return "prelude.gw" }

func (preludeSource) WriteTo(w io.Writer) (n int64, err error) {
	var buf bytes.Buffer
	line := func(parts ...string) {
		if err != nil {
			return
		}
		for i, s := range parts {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(s)
		}
		buf.WriteByte('\n')
		var m int64
		m, err = buf.WriteTo(w)
		n += m
	}

	// Shuffles first. Everything deeper than over2 and pick is a dip away.
	line(`: dup2 "duplicate the top two values" [x y -- x y x y] over over ;`)
	line(`: dup3 "duplicate the top three values" [x y z -- x y z x y z] pick pick pick ;`)
	line(`: drop2 [x y --] drop drop ;`)
	line(`: drop3 [x y z --] drop drop drop ;`)
	line(`: nip "discard the second value" [x y -- y] swap drop ;`)
	line(`: nip2 "discard the second and third values" [x y z -- z] #[ drop2 ] dip ;`)
	line(`: dupd "duplicate the second value in place" [x y -- x x y] #[ dup ] dip ;`)
	line(`: swapd "exchange the second and third values" [x y z -- y x z] #[ swap ] dip ;`)
	line(`: rot [x y z -- y z x] #[ swap ] dip swap ;`)
	line(`: -rot [x y z -- z x y] swap #[ swap ] dip ;`)

	// Preserving more than one value underneath a quotation is just a matter
	// of tucking the quotation below each value in turn.
	line(`: dip2 "run q under the top two values" [x y q -- x y] swap #[ dip ] dip ;`)
	line(`: dip3 "run q under the top three values" [x y z q -- x y z] swap #[ dip2 ] dip ;`)
	line(`: dip4 "run q under the top four values" [w x y z q -- w x y z] swap #[ dip3 ] dip ;`)

	// keep generalizes the same way: copy the values, then run q under them.
	line(`: keep2 "run q on x and y, then restore them" [x y q -- x y] #[ dup2 ] dip dip2 ;`)
	line(`: keep3 "run q on x y and z, then restore them" [x y z q -- x y z] #[ dup3 ] dip dip3 ;`)

	// Cleave: several quotations applied to the same value(s), left to right.
	line(`: bi "apply p then q to x" [x p q --] #[ keep ] dip invoke ;`)
	line(`: bi2 [x y p q --] #[ keep2 ] dip invoke ;`)
	line(`: bi3 [x y z p q --] #[ keep3 ] dip invoke ;`)
	line(`: tri "apply p, q, then r to x" [x p q r --] #[ #[ keep ] dip keep ] dip invoke ;`)
	line(`: tri2 [x y p q r --] #[ #[ keep2 ] dip keep2 ] dip invoke ;`)
	line(`: tri3 [x y z p q r --] #[ #[ keep3 ] dip keep3 ] dip invoke ;`)

	// Spread: one quotation per value, paired up by position.
	line(`: bi* "apply p to x and q to y" [x y p q --] #[ dip ] dip invoke ;`)
	line(`: bi2* [w x y z p q --] #[ dip2 ] dip invoke ;`)
	line(`: tri* "apply p to x, q to y, and r to z" [x y z p q r --] #[ #[ dip2 ] dip dip ] dip invoke ;`)
	line(`: tri2* [u v w x y z p q r --] #[ dip4 ] dip2 bi2* ;`)

	// Apply: the same quotation spread over each value.
	line(`: bi& "apply q to x and to y" [x y q --] dup bi* ;`)
	line(`: bi2& [w x y z q --] dup bi2* ;`)
	line(`: tri& "apply q to x, y, and z" [x y z q --] dup dup tri* ;`)
	line(`: tri2& [u v w x y z q --] dup dup tri2* ;`)

	line(`: both? "are q of x and q of y both truthy" [x y q -- ?] bi& and ;`)
	line(`: either? "is q of x or q of y truthy" [x y q -- ?] bi& or ;`)

	// Boolean control, from if alone.
	line(`: if-not [? t f --] swap if ;`)
	line(`: when "run q if ? is truthy" [? q --] #[ ] if ;`)
	line(`: when-not "run q unless ? is truthy" [? q --] #[ ] swap if ;`)
	line(`: if* "like if, but a truthy ? stays on the stack for t" [? t f --]`,
		`pick #[ drop invoke ] #[ nip2 invoke ] if ;`)
	line(`: when* "like when, but a truthy ? stays on the stack for q" [? q --]`,
		`over #[ invoke ] #[ drop2 ] if ;`)

	return n, err
}
