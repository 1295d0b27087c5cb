// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly error handling for HTTP requests.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Cause is the detected reason a request never got an answer.
type Cause int

const (
	CauseUnknown Cause = iota
	CauseTimeout
	CauseDNS
	CauseRefused
	CauseTLS
)

// Classify inspects err and returns the most specific cause it recognizes.
func Classify(err error) Cause {
	switch {
	case err == nil:
		return CauseUnknown
	case isTimeoutError(err):
		return CauseTimeout
	case isDNSError(err):
		return CauseDNS
	case isConnectionRefusedError(err):
		return CauseRefused
	case isSSLError(err):
		return CauseTLS
	}
	return CauseUnknown
}

// FormatNetworkError prints a troubleshooting hint for err to the terminal and returns
// it wrapped. host names the server in the hint.
func FormatNetworkError(err error, context, host string) error {
	if err == nil {
		return nil
	}
	for _, l := range hintLines(Classify(err), context, host) {
		pterm.Println(l)
	}
	pterm.Println()
	return fmt.Errorf("network error: %w", err)
}

// Hint returns the hint for err as plain text.
func Hint(err error, context, host string) string {
	return strings.Join(hintLines(Classify(err), context, host), "\n")
}

func hintLines(c Cause, context, host string) []string {
	if host == "" {
		host = "the server"
	}
	switch c {
	case CauseTimeout:
		return []string{
			fmt.Sprintf("⏱️  Connection timeout while %s", context),
			"",
			"The server took too long to respond. This could mean:",
			"  • The server is busy or stuck on a slow dataset",
			"  • A network firewall is dropping the connection",
			"",
			"Please try again in a few moments.",
		}
	case CauseDNS:
		return []string{
			fmt.Sprintf("🌐 Cannot resolve server address while %s", context),
			"",
			fmt.Sprintf("Unable to look up %s. Check the base URL (--base-url or COUNTRYDATA_BASE_URL).", host),
		}
	case CauseRefused:
		return []string{
			fmt.Sprintf("🚫 Connection refused while %s", context),
			"",
			fmt.Sprintf("Nothing is listening on %s. Start the server first:", host),
			"  countrydata serve",
		}
	case CauseTLS:
		return []string{
			fmt.Sprintf("🔒 Secure connection failed while %s", context),
			"",
			"Cannot establish a secure HTTPS connection. Check the certificate of",
			fmt.Sprintf("%s and your system clock.", host),
		}
	}
	return []string{
		fmt.Sprintf("❌ Cannot reach %s while %s", host, context),
		"",
		"Please check that the server is running and the base URL is correct.",
	}
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
