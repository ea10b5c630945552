// Command gen_vm_expects generates free function wrappers for the vmTestCase
// builder methods, so that test layers can be given as variadic options.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

var (
	in  namedReader    = os.Stdin
	out io.WriteCloser = os.Stdout
)

func parseFlags() {
	flag.Parse()

	args := flag.Args()

	if len(args) > 0 {
		name := args[0]
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("failed to open %v: %v", name, err)
		}
		args = args[1:]
		in = f
	}

	if len(args) > 0 {
		name := args[0]
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %v: %v", name, err)
		}
		out = f
	}
}

func main() {
	ctx := context.Background()
	parseFlags()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	ready := make(chan struct{})

	// goimports formats the output and supplies any imports the wrapper
	// signatures need.
	eg.Go(func() error {
		gofmt := exec.CommandContext(ctx, "goimports")
		fmtPipe, err := gofmt.StdinPipe()
		if err != nil {
			return err
		}

		defer out.Close()
		gofmt.Stdout = out
		gofmt.Stderr = os.Stderr

		out = fmtPipe

		close(ready)
		if err := gofmt.Run(); err != nil {
			return fmt.Errorf("goimports run failed: %w", err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ready:
		}

		defer func() {
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()

		methods, err := scanMethods(ctx, in)
		if err != nil {
			return err
		}
		_, err = render(methods).WriteTo(out)
		return err
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

// builderMethod matches vmTestCase builders that take arguments; those
// without arguments are called directly.
var builderMethod = regexp.MustCompile(`^func \(vmt vmTestCase\) (expect|with)(\w+)\((.+?)\) vmTestCase`)

type method struct {
	base, what string
	params     string
	args       []string
}

func scanMethods(ctx context.Context, r io.Reader) (methods []method, _ error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		match := builderMethod.FindStringSubmatch(sc.Text())
		if len(match) == 0 {
			continue
		}
		m := method{base: match[1], what: match[2], params: match[3]}
		for _, part := range bytes.Split([]byte(m.params), []byte(",")) {
			fields := bytes.Fields(part)
			if len(fields) < 2 {
				return nil, fmt.Errorf("%v%v: every parameter must be typed, got %q", m.base, m.what, m.params)
			}
			arg := string(fields[0])
			if bytes.HasPrefix(fields[1], []byte("...")) {
				arg += "..."
			}
			m.args = append(m.args, arg)
		}
		methods = append(methods, m)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return methods, sc.Err()
}

func render(methods []method) *bytes.Buffer {
	var buf bytes.Buffer
	buf.Grow(1024)
	buf.WriteString("package main\n\n")

	buf.WriteString("// @generated from ")
	buf.WriteString(in.Name())
	buf.WriteString("\n\n")

	if args := flag.Args(); len(args) >= 2 {
		buf.WriteString("//go:generate go run scripts/gen_vm_expects.go --")
		for _, arg := range args {
			buf.WriteByte(' ')
			buf.WriteString(arg)
		}
		buf.WriteString("\n\n")
	}

	for _, m := range methods {
		fmt.Fprintf(&buf, "func %vVM%v(%v) func(vmTestCase) vmTestCase {\n", m.base, m.what, m.params)
		buf.WriteString("  return func(vmt vmTestCase) vmTestCase {\n")
		fmt.Fprintf(&buf, "    return vmt.%v%v(", m.base, m.what)
		for i, arg := range m.args {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(arg)
		}
		buf.WriteString(")\n")
		buf.WriteString("  }\n")
		buf.WriteString("}\n\n")
	}
	return &buf
}
