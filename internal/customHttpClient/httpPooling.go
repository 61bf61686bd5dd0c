package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/akolanti/DietRAG/internal/config"
)

var (
	once   sync.Once
	shared *http.Client
)

// Pooled returns the shared keep-alive transport handed to the embedding and
// LLM SDK clients so repeated calls reuse connections instead of paying the
// handshake every time.
func Pooled() *http.Client {
	once.Do(func() {
		shared = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        config.MaxIdleConns,
				MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
				IdleConnTimeout:     config.IdleConnTimeout,
			},
		}
	})
	return shared
}
