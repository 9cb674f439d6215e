package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/akolanti/SupportBot/internal/config"
)

var customTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var (
	client *http.Client
	once   sync.Once
)

// GetClient returns the shared client all outbound model calls go through, so
// connections to the generation service are reused between requests. It has no
// overall timeout: callers bound each call with their context.
func GetClient() *http.Client {
	once.Do(func() {
		client = &http.Client{Transport: customTransport}
	})
	return client
}

func CloseIdleConnections() {
	customTransport.CloseIdleConnections()
}
