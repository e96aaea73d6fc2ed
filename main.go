package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/zam-dot/contrastscope/styledom"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("contrastscope: ")

	Execute()
}

// loadDocument reads a page from a URL, a file or stdin ("-") and resolves
// its styles.
func loadDocument(ctx context.Context, target string, cfg Config) (*styledom.Document, string, error) {
	resolved, isURL, err := normalizeTarget(target)
	if err != nil {
		return nil, "", err
	}

	var body io.ReadCloser
	switch {
	case resolved == "-":
		body = io.NopCloser(os.Stdin)
	case isURL:
		body, err = fetchPage(ctx, resolved, cfg)
	default:
		body, err = os.Open(resolved)
	}
	if err != nil {
		return nil, "", err
	}
	defer body.Close() // Always close the response body

	doc, err := styledom.Load(body, cfg.documentOptions())
	if err != nil {
		return nil, "", fmt.Errorf("loading %s: %w", resolved, err)
	}
	return doc, resolved, nil
}

// fetchPage downloads a page with browser-like headers so that sites serve
// the same markup a visitor would see.
func fetchPage(ctx context.Context, url string, cfg Config) (io.ReadCloser, error) {
	client := &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: %s", url, resp.Status)
	}
	return resp.Body, nil
}
