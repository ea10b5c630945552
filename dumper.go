package main

import (
	"fmt"
	"io"
	"strings"
)

type vmDumper struct {
	vm  *VM
	out io.Writer

	// natives lists primitive words by name rather than just counting them
	natives bool
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  depth: %v\n", dump.vm.depth)
	dump.dumpStack()
	dump.dumpWords()
}

func (dump vmDumper) dumpStack() {
	fmt.Fprintf(dump.out, "  stack: %v\n", Vector(dump.vm.stack.Snapshot()))
}

func (dump vmDumper) dumpWords() {
	fmt.Fprintf(dump.out, "# Words\n")
	var natives []string
	for _, name := range dump.vm.wordNames() {
		w := dump.vm.dict[name]
		if w.Native != nil {
			natives = append(natives, name)
			continue
		}
		var sb strings.Builder
		sb.WriteString("  : ")
		sb.WriteString(name)
		if w.Doc != "" {
			sb.WriteByte(' ')
			sb.WriteString(Str(w.Doc).String())
		}
		if w.Effect != "" {
			sb.WriteByte(' ')
			sb.WriteString(w.Effect)
		}
		for _, t := range w.Body.terms {
			sb.WriteByte(' ')
			sb.WriteString(t.String())
		}
		sb.WriteString(" ;\n")
		io.WriteString(dump.out, sb.String())
	}
	if dump.natives {
		fmt.Fprintf(dump.out, "  natives: %v\n", strings.Join(natives, " "))
	} else {
		fmt.Fprintf(dump.out, "  natives: %v\n", len(natives))
	}
}
