package model

import (
	"net/http"
	"time"
)

// CachedResponse is one stored request/response pair inside a cache namespace.
type CachedResponse struct {
	Namespace  string
	Key        string
	StatusCode int
	Header     http.Header
	Body       []byte
	StoredAt   time.Time
}
