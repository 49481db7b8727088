package httpclient

import (
	"log"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds every outbound API call.
const DefaultTimeout = 30 * time.Second

// New returns an HTTP client with the given timeout and optional proxy.
// An unparsable proxy URL is logged and ignored.
func New(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		} else {
			log.Printf("[WARN] ignoring invalid proxy %q: %v", proxyURL, err)
		}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
