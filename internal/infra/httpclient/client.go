// Package httpclient builds the tuned *http.Client used for introspection
// and query execution. A CLI invocation is a single request/response cycle,
// so the per-phase timeouts matter more than pool sizing.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

type Config struct {
	// Total timeout for the entire request (includes redirects, reading body, etc).
	// A context deadline can still override this.
	Timeout time.Duration

	// Transport / dial timeouts.
	DialTimeout     time.Duration
	KeepAlive       time.Duration
	TLSHandshake    time.Duration
	ResponseHeader  time.Duration
	ExpectContinue  time.Duration
	IdleConnTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		DialTimeout:     5 * time.Second,
		KeepAlive:       30 * time.Second,
		TLSHandshake:    5 * time.Second,
		ResponseHeader:  15 * time.Second,
		ExpectContinue:  1 * time.Second,
		IdleConnTimeout: 90 * time.Second,
	}
}

// New builds a client from cfg. A zero Timeout keeps requests unbounded,
// which introspection against slow schemas sometimes needs.
func New(cfg Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		IdleConnTimeout: cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
		ExpectContinueTimeout: cfg.ExpectContinue,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.Timeout,
	}
}

// ForProject derives a client config from the project timeout.
func ForProject(timeout time.Duration) *http.Client {
	cfg := DefaultConfig()
	cfg.Timeout = timeout
	return New(cfg)
}
