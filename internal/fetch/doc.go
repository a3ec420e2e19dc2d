// Package fetch retrieves venue pages over HTTP with bot-protection
// fallback.
//
// A fetch walks an escalating ladder of client strategies: a plain
// HTTP client with a browser User-Agent, then a client sending a full
// browser header set over HTTP/2 when the site answers 403/429 or the
// TLS handshake fails, and finally a client with certificate
// verification disabled for venues with broken TLS. Pages fetched
// insecurely are flagged so callers can deprioritize their trust.
// Retries use bounded exponential backoff; failures surface as
// ErrTimeout, HTTPError, ErrConnection or ErrExhausted.
package fetch
