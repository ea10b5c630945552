package fileinput

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Location names a line within one of an Input's sources.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string {
	if loc.Name == "" {
		return fmt.Sprintf("<input>:%v", loc.Line)
	}
	return fmt.Sprintf("%v:%v", loc.Name, loc.Line)
}

// Input reads runes sequentially through a queue of named sources, tracking
// the location of the last rune read. Sources implementing io.Closer are
// closed once exhausted.
type Input struct {
	queue []io.Reader
	rr    io.RuneReader
	cur   io.Reader
	loc   Location
	nl    bool
}

// Named wraps r so that it reports name as its source name.
func Named(name string, r io.Reader) io.Reader { return namedReader{r, name} }

// NamedString is a convenience for Named(name, strings.NewReader(s)).
func NamedString(name, s string) io.Reader { return Named(name, strings.NewReader(s)) }

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func (nr namedReader) Close() error {
	if cl, ok := nr.Reader.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// Enqueue appends sources to be read after all those already queued.
func (in *Input) Enqueue(rs ...io.Reader) {
	for _, r := range rs {
		if r != nil {
			in.queue = append(in.queue, r)
		}
	}
}

// Location returns the location of the most recently read rune.
func (in *Input) Location() Location { return in.loc }

// ReadRune reads the next rune, advancing to the next queued source when the
// current one is exhausted. Returns io.EOF only after the final source.
func (in *Input) ReadRune() (rune, int, error) {
	for {
		if in.rr == nil && !in.next() {
			return 0, 0, io.EOF
		}
		r, n, err := in.rr.ReadRune()
		if n > 0 {
			if in.nl {
				in.loc.Line++
				in.nl = false
			}
			if r == '\n' {
				in.nl = true
			}
			return r, n, nil
		}
		if err == io.EOF {
			in.close()
			continue
		}
		return 0, 0, err
	}
}

// Close closes the current source and discards any queued ones.
func (in *Input) Close() (err error) {
	err = in.close()
	for _, r := range in.queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.queue = nil
	return err
}

func (in *Input) close() (err error) {
	if cl, ok := in.cur.(io.Closer); ok {
		err = cl.Close()
	}
	in.cur, in.rr = nil, nil
	return err
}

func (in *Input) next() bool {
	if len(in.queue) == 0 {
		return false
	}
	r := in.queue[0]
	in.queue = in.queue[1:]
	in.cur = r
	if rr, ok := r.(io.RuneReader); ok {
		in.rr = rr
	} else {
		in.rr = bufio.NewReader(r)
	}
	in.loc = Location{Name: nameOf(r), Line: 1}
	in.nl = false
	return true
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
