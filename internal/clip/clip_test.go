package clip

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSC52WriterEmitsEscapeSequence(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	writer := &osc52Writer{out: w, timeout: 0}
	writer.timeout = 1e9 // 1s, avoid zero-timeout racing the pipe write
	require.NoError(t, writer.Write("deadbeef"))
	w.Close()

	buf := make([]byte, 64)
	n, _ := r.Read(buf)
	got := string(buf[:n])
	assert.Contains(t, got, "\033]52;c;")
	assert.Contains(t, got, "\033\\")
}

func TestNewNativeReturnsNilWithoutTools(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	assert.Nil(t, newNative())
}
