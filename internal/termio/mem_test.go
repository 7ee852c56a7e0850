package termio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemBackendSizeTooSmall(t *testing.T) {
	m := NewMemBackend(79, 24)
	_, err := m.Size()
	assert.ErrorIs(t, err, ErrSizeTooSmall)
}

func TestMemBackendReadTimeout(t *testing.T) {
	m := NewMemBackend(80, 24)
	b, err := m.Read(5 * time.Millisecond)
	assert.NoError(t, err)
	assert.Nil(t, b)
}

func TestMemBackendFeedRoundTrip(t *testing.T) {
	m := NewMemBackend(80, 24)
	m.Feed([]byte("a"))
	b, err := m.Read(time.Second)
	assert.NoError(t, err)
	assert.Equal(t, []byte("a"), b)
}

func TestMemBackendRestoreIsIdempotent(t *testing.T) {
	m := NewMemBackend(80, 24)
	_ = m.EnterRawMode()
	_ = m.EnterAltScreen()
	m.Restore()
	assert.True(t, m.Restored)
	m.Restore()
	assert.True(t, m.Restored)
}
