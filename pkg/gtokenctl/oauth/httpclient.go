package oauth

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// HTTPOptions configures the client returned by NewHTTPClient.
type HTTPOptions struct {
	CAFile          string
	InsecureSkipTLS bool
	// Timeout of zero means requests wait indefinitely.
	Timeout   time.Duration
	UserAgent string
}

func NewHTTPClient(opts HTTPOptions) (*http.Client, error) {
	transport, err := buildTransport(opts.CAFile, opts.InsecureSkipTLS)
	if err != nil {
		return nil, err
	}
	var rt http.RoundTripper = transport
	if opts.UserAgent != "" {
		rt = &userAgentRoundTripper{wrapped: transport, userAgent: opts.UserAgent}
	}
	return &http.Client{Transport: rt, Timeout: opts.Timeout}, nil
}

type userAgentRoundTripper struct {
	wrapped   http.RoundTripper
	userAgent string
}

func (rt *userAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", rt.userAgent)
	return rt.wrapped.RoundTrip(clone)
}

func buildTransport(caFile string, insecure bool) (*http.Transport, error) {
	tlsConfig, err := loadTLSConfig(caFile, insecure)
	if err != nil {
		return nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsConfig
	return transport, nil
}

func loadTLSConfig(caFile string, insecure bool) (*tls.Config, error) {
	if caFile == "" && !insecure {
		return &tls.Config{MinVersion: tls.VersionTLS12}, nil
	}
	certPool, err := loadCertPool(caFile)
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: insecure, //nolint:gosec // opt-in via --insecure-skip-tls-verify
		RootCAs:            certPool,
	}, nil
}

func loadCertPool(caFile string) (*x509.CertPool, error) {
	if caFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if ok := pool.AppendCertsFromPEM(data); !ok {
		return nil, errors.New("failed to parse CA file")
	}
	return pool, nil
}
