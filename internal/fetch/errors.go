package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	// ErrTimeout indicates the request exceeded the per-request timeout.
	ErrTimeout = errors.New("request timed out")
	// ErrConnection indicates the connection could not be established.
	ErrConnection = errors.New("connection failed")
	// ErrExhausted indicates every fetch strategy failed within the
	// bounded retry budget.
	ErrExhausted = errors.New("all fetch strategies exhausted")
)

// HTTPError is returned when the server answers with a non-200 status.
type HTTPError struct {
	Status int
	URL    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d fetching %s", e.Status, e.URL)
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isCertError reports whether err stems from certificate verification.
func isCertError(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}
	var hostname x509.HostnameError
	if errors.As(err, &hostname) {
		return true
	}
	var invalid x509.CertificateInvalidError
	return errors.As(err, &invalid)
}

// isBlocked reports whether the status code suggests bot detection.
func isBlocked(status int) bool {
	return status == http.StatusForbidden || status == http.StatusTooManyRequests
}

// isRetryableStatus reports whether the status is worth retrying with
// the same strategy.
func isRetryableStatus(status int) bool {
	return status >= 500
}
