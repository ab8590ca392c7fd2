package adapter

import (
	"net/http"
)

// browserHeaders mimic a desktop Chrome navigation. Accept-Encoding is left
// to the transport so gzip bodies are decoded transparently.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Connection":      "keep-alive",
}

// maxBodyBytes bounds how much of a search page is parsed.
const maxBodyBytes = 5 << 20

func setBrowserHeaders(req *http.Request, extra map[string]string) {
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}
}
