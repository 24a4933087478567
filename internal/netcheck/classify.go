package netcheck

import (
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"strings"
)

// FailureKind categorizes why an endpoint probe failed.
type FailureKind int

const (
	// FailureNone indicates the probe succeeded.
	FailureNone FailureKind = iota
	// FailureUnknown indicates an unclassified error.
	FailureUnknown
	// FailureTLS indicates a TLS/certificate verification error.
	FailureTLS
	// FailureNetwork indicates a connectivity error (refused, unreachable).
	FailureNetwork
	// FailureTimeout indicates the request timed out.
	FailureTimeout
	// FailureDNS indicates a DNS resolution failure.
	FailureDNS
)

// String returns a human-readable name for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "ok"
	case FailureTLS:
		return "TLS certificate error"
	case FailureNetwork:
		return "network error"
	case FailureTimeout:
		return "connection timeout"
	case FailureDNS:
		return "DNS resolution error"
	default:
		return "connection error"
	}
}

// classifyFailure analyzes a probe error and categorizes it for better
// operator feedback.
func classifyFailure(err error) FailureKind {
	if err == nil {
		return FailureNone
	}
	if isTLSError(err) {
		return FailureTLS
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FailureDNS
	}

	if isTimeoutError(err) {
		return FailureTimeout
	}

	if isNetworkError(err.Error()) {
		return FailureNetwork
	}

	return FailureUnknown
}

// isTLSError checks if the error is related to TLS/certificate issues.
func isTLSError(err error) bool {
	var certErr *x509.CertificateInvalidError
	var hostErr *x509.HostnameError
	var unknownAuthErr *x509.UnknownAuthorityError
	var systemRootsErr *x509.SystemRootsError

	if errors.As(err, &certErr) || errors.As(err, &hostErr) ||
		errors.As(err, &unknownAuthErr) || errors.As(err, &systemRootsErr) {
		return true
	}

	// Note: "certificate" is checked broadly as it covers most TLS-related error messages
	errStr := err.Error()
	tlsKeywords := []string{
		"x509:",
		"certificate",
		"tls:",
		"TLS handshake",
	}
	for _, keyword := range tlsKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// isTimeoutError checks if the error is a timeout.
func isTimeoutError(err error) bool {
	// Check for net.Error timeout (interface, needs manual unwrapping)
	for e := err; e != nil; {
		if ne, ok := e.(net.Error); ok && ne.Timeout() {
			return true
		}
		if u, ok := e.(interface{ Unwrap() error }); ok {
			e = u.Unwrap()
		} else {
			break
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// isNetworkError checks if the error string indicates a connectivity issue.
func isNetworkError(errStr string) bool {
	networkKeywords := []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no route to host",
		"dial tcp",
		"connect:",
	}
	for _, keyword := range networkKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}
