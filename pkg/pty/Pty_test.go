package pty

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/delta-vision/deltaterm/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Log = logger.NewLogger("error", []string{"stdout"}, []string{"stderr"})
	os.Exit(m.Run())
}

func drain(t *testing.T, p *Pty) string {
	t.Helper()

	var output strings.Builder
	buf := make([]byte, 4096)

	for {
		n, err := p.Read(buf)

		if n > 0 {
			output.Write(buf[:n])
		}

		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			return output.String()
		}
	}
}

func TestSpawnEcho(t *testing.T) {
	p, err := Spawn("echo hello", os.Environ(), 24, 80)
	require.NoError(t, err)
	defer p.Close()

	output := drain(t, p)

	assert.Contains(t, output, "hello")
	assert.NoError(t, p.Wait())
	assert.True(t, p.Exited())
}

func TestSpawnFailure(t *testing.T) {
	testCases := []struct {
		name    string
		command string
	}{
		{"Missing binary", "definitely-not-a-real-binary"},
		{"Empty command", ""},
		{"Unbalanced quoting", `echo "unclosed`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Spawn(tc.command, os.Environ(), 24, 80)

			assert.Error(t, err)
			assert.Nil(t, p)
		})
	}
}

func TestResize(t *testing.T) {
	p, err := Spawn("sleep 30", os.Environ(), 24, 80)
	require.NoError(t, err)
	defer p.Close()
	defer p.Terminate(time.Second)

	require.NoError(t, p.Resize(40, 120))

	rows, cols := p.WindowSize()
	assert.Equal(t, uint16(40), rows)
	assert.Equal(t, uint16(120), cols)

	size, err := pty.GetsizeFull(p.master)
	require.NoError(t, err)
	assert.Equal(t, uint16(40), size.Rows)
	assert.Equal(t, uint16(120), size.Cols)

	// Same dimensions again is a no-op, not a failure.
	assert.ErrorIs(t, p.Resize(40, 120), ErrResizeIgnored)
}

func TestTerminateGraceful(t *testing.T) {
	p, err := Spawn("sleep 30", os.Environ(), 24, 80)
	require.NoError(t, err)
	defer p.Close()

	started := time.Now()
	p.Terminate(3 * time.Second)

	assert.True(t, p.Exited())
	assert.Less(t, time.Since(started), 3*time.Second)
}

func TestTerminateEscalation(t *testing.T) {
	p, err := Spawn(`sh -c "trap '' TERM; sleep 30"`, os.Environ(), 24, 80)
	require.NoError(t, err)
	defer p.Close()

	// Give the shell a moment to install the trap.
	time.Sleep(200 * time.Millisecond)

	started := time.Now()
	p.Terminate(300 * time.Millisecond)

	assert.True(t, p.Exited())
	assert.GreaterOrEqual(t, time.Since(started), 300*time.Millisecond)
	assert.Error(t, p.Wait())
}

func TestClosedPty(t *testing.T) {
	p, err := Spawn("cat", os.Environ(), 24, 80)
	require.NoError(t, err)

	p.Terminate(time.Second)
	p.Close()
	p.Close()

	_, err = p.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrClosed)

	assert.ErrorIs(t, p.Resize(50, 100), ErrClosed)

	_, err = p.Read(make([]byte, 16))
	assert.ErrorIs(t, err, io.EOF)
}
