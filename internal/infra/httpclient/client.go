// Package httpclient builds the outbound HTTP clients used for identity
// provider calls. Every client carries a hard timeout so a stalled provider
// cannot pin a request past its deadline.
package httpclient

import (
	"net/http"
	"time"
)

func New(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
