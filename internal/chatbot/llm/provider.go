package llm

import (
	"context"
	"errors"
	"iter"
	"net"
	"strings"
	"syscall"
)

var (
	// ErrUnreachable means no connection to the generation service could be made.
	ErrUnreachable = errors.New("generation service unreachable")
	// ErrBadResponse covers everything else that goes wrong once connected:
	// error statuses, broken streams, timeouts.
	ErrBadResponse = errors.New("generation service failed")
	// ErrEmptyResponse means the service answered but produced no text.
	ErrEmptyResponse = errors.New("generation service returned no text")
)

// Provider is the text generation service. Generate yields the answer as it
// is produced, fragment by fragment; a non-nil error ends the sequence.
type Provider interface {
	Generate(ctx context.Context, prompt string) iter.Seq2[string, error]
	Name() string
}

// Collect concatenates every fragment and trims the result. A stream that ends
// without text gives ErrEmptyResponse.
func Collect(seq iter.Seq2[string, error]) (string, error) {
	var b strings.Builder
	for fragment, err := range seq {
		if err != nil {
			return "", err
		}
		b.WriteString(fragment)
	}
	answer := strings.TrimSpace(b.String())
	if answer == "" {
		return "", ErrEmptyResponse
	}
	return answer, nil
}

// IsConnectionError reports whether err happened while connecting, as opposed
// to after the service accepted the request.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" && !opErr.Timeout() {
		return true
	}
	return false
}

// Fail is a sequence that yields err once.
func Fail(err error) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield("", err)
	}
}
