package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// ClientConfig holds outbound HTTP client configuration.
type ClientConfig struct {
	// Connection pooling
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int
	IdleConnTimeout     time.Duration

	// Timeouts
	DialTimeout           time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration
	ExpectContinueTimeout time.Duration

	// Keep-alive
	DisableKeepAlives bool
	KeepAlive         time.Duration

	// Compression
	DisableCompression bool

	// TLS
	MinTLSVersion uint16
}

// FeedClientConfig returns the configuration used for feed submissions.
// Every brand's feed lives on the same affiliate-platform host, so the pool
// is tuned for one endpoint.
func FeedClientConfig() *ClientConfig {
	return &ClientConfig{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 20,
		MaxConnsPerHost:     50,
		IdleConnTimeout:     90 * time.Second,

		DialTimeout:           10 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second, // the feed can be slow under load
		ExpectContinueTimeout: 1 * time.Second,

		DisableKeepAlives: false,
		KeepAlive:         60 * time.Second,

		// Feed bodies are form-encoded, responses small XML
		DisableCompression: true,

		MinTLSVersion: tls.VersionTLS12,
	}
}

// DefaultClientConfig returns a balanced configuration for general use.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     50,
		IdleConnTimeout:     90 * time.Second,

		DialTimeout:           10 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		DisableKeepAlives: false,
		KeepAlive:         60 * time.Second,

		DisableCompression: false,

		MinTLSVersion: tls.VersionTLS12,
	}
}

// NewHTTPClient creates an HTTP client with pooling and keep-alive from the
// given configuration.
func NewHTTPClient(cfg *ClientConfig, timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	transport := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshakeTimeout,
		ResponseHeaderTimeout: cfg.ResponseHeaderTimeout,
		ExpectContinueTimeout: cfg.ExpectContinueTimeout,

		DisableKeepAlives:  cfg.DisableKeepAlives,
		DisableCompression: cfg.DisableCompression,

		TLSClientConfig: &tls.Config{
			MinVersion: cfg.MinTLSVersion,
		},

		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
