// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// ShortHTTPClient is for quick service-to-service calls (auth validation, sync).
var ShortHTTPClient = &http.Client{
	Timeout: 10 * time.Second,
}

// LongHTTPClient is for slow upstreams (AI generation can take minutes).
var LongHTTPClient = &http.Client{
	Timeout: 300 * time.Second,
}
