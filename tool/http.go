package tool

import (
	"net/http"
	"time"
)

var (
	DefaultTimeout   = 30 * time.Second
	ApiHttpClient    *http.Client
	UploadHttpClient *http.Client
)

func init() {
	ApiHttpClient = newHTTPClientWithTimeout(DefaultTimeout)
	// uploads get no overall deadline so large transfers are not cut off;
	// cancellation happens through the request context instead.
	UploadHttpClient = newHTTPClientWithTimeout(0)
}

// newHTTPClientWithTimeout creates an HTTP client with pooled connections.
func newHTTPClientWithTimeout(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DisableKeepAlives:   false,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func GetHttpClient() *http.Client {
	return ApiHttpClient
}

// GetUploadHttpClient returns the client used for upload bodies.
func GetUploadHttpClient() *http.Client {
	return UploadHttpClient
}
