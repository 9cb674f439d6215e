package llm

import (
	"errors"
	"fmt"
	"iter"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragments(parts ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, p := range parts {
			if !yield(p, nil) {
				return
			}
		}
	}
}

func TestCollect(t *testing.T) {
	answer, err := Collect(fragments(" Hello", ", ", "world \n"))
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", answer)

	_, err = Collect(fragments())
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = Collect(fragments("  ", "\n"))
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = Collect(Fail(ErrUnreachable))
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestIsConnectionError(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}
	assert.True(t, IsConnectionError(fmt.Errorf("post: %w", refused)))
	assert.True(t, IsConnectionError(&net.DNSError{Err: "no such host", Name: "ollama"}))

	assert.False(t, IsConnectionError(nil))
	assert.False(t, IsConnectionError(errors.New("unexpected EOF")))
	assert.False(t, IsConnectionError(&net.OpError{Op: "read", Net: "tcp", Err: errors.New("reset")}))
}
