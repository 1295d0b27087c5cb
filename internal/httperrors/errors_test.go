package httperrors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Cause
	}{
		{"nil", nil, CauseUnknown},
		{"deadline", context.DeadlineExceeded, CauseTimeout},
		{"client timeout", errors.New(`Post "http://x": net/http: request canceled (Client.Timeout exceeded while awaiting headers)`), CauseTimeout},
		{"dns", &net.DNSError{Err: "no such host", Name: "nowhere.invalid"}, CauseDNS},
		{"refused op error", &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}, CauseRefused},
		{"refused text", fmt.Errorf("request failed: %w", errors.New("dial tcp 127.0.0.1:5000: connect: connection refused")), CauseRefused},
		{"tls", errors.New("x509: certificate signed by unknown authority"), CauseTLS},
		{"other", errors.New("EOF"), CauseUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestHint_RefusedSuggestsServe(t *testing.T) {
	err := errors.New("dial tcp 127.0.0.1:5000: connect: connection refused")

	h := Hint(err, "fetching country data", "127.0.0.1:5000")

	assert.Contains(t, h, "Connection refused while fetching country data")
	assert.Contains(t, h, "Nothing is listening on 127.0.0.1:5000")
	assert.Contains(t, h, "countrydata serve")
}

func TestHint_DefaultHost(t *testing.T) {
	h := Hint(errors.New("EOF"), "checking status", "")
	assert.Contains(t, h, "Cannot reach the server while checking status")
}

func TestExtractHostFromURL(t *testing.T) {
	assert.Equal(t, "127.0.0.1:5000", ExtractHostFromURL("http://127.0.0.1:5000/get_country_data"))
	assert.Equal(t, "server", ExtractHostFromURL("::bad"))
	assert.Equal(t, "server", ExtractHostFromURL(""))
}
