package fileinput_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlpinney/gershwin/internal/fileinput"
)

func readAll(t *testing.T, in *fileinput.Input) (s string, locs []string) {
	var sb strings.Builder
	for {
		r, _, err := in.ReadRune()
		if err == io.EOF {
			return sb.String(), locs
		}
		require.NoError(t, err, "unexpected read error")
		sb.WriteRune(r)
		locs = append(locs, in.Location().String())
	}
}

func Test_Input(t *testing.T) {
	var in fileinput.Input
	in.Enqueue(
		fileinput.NamedString("a.gw", "1\n2"),
		fileinput.NamedString("b.gw", "x\n"),
		strings.NewReader("z"),
	)

	s, locs := readAll(t, &in)
	assert.Equal(t, "1\n2x\nz", s)
	assert.Equal(t, []string{
		"a.gw:1", "a.gw:1", "a.gw:2",
		"b.gw:1", "b.gw:1",
		"<unnamed *strings.Reader>:1",
	}, locs)
	_, _, err := in.ReadRune()
	assert.Equal(t, io.EOF, err, "expected input exhausted")
}

type closeRecorder struct {
	io.Reader
	closed *int
}

func (cr closeRecorder) Close() error { *cr.closed++; return nil }

func Test_Input_closes(t *testing.T) {
	var closed int
	var in fileinput.Input
	in.Enqueue(
		closeRecorder{strings.NewReader("ab"), &closed},
		closeRecorder{strings.NewReader("cd"), &closed},
	)
	r, _, err := in.ReadRune()
	require.NoError(t, err)
	assert.Equal(t, 'a', r)
	require.NoError(t, in.Close())
	assert.Equal(t, 2, closed, "expected current and queued sources closed")
	_, _, err = in.ReadRune()
	assert.Equal(t, io.EOF, err)
}
