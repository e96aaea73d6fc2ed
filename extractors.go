package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// normalizeTarget handles user-friendly input: "-" is stdin, an existing
// path is a file, "example.com" becomes https://example.com.
func normalizeTarget(input string) (string, bool, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false, fmt.Errorf("no page given")
	}
	if input == "-" {
		return input, false, nil
	}

	// If it already has a scheme, use as-is
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		u, err := url.Parse(input)
		if err != nil || u.Host == "" {
			return "", false, fmt.Errorf("invalid URL %q", input)
		}
		return u.String(), true, nil
	}
	if path, ok := strings.CutPrefix(input, "file://"); ok {
		return path, false, nil
	}

	// Local files win over domain guessing ("index.html" looks like a domain)
	if _, err := os.Stat(input); err == nil {
		return input, false, nil
	}

	// Protocol-relative URLs (//example.com)
	if strings.HasPrefix(input, "//") {
		input = "https:" + input
	} else if strings.Contains(input, ".") && !strings.Contains(input, " ") && !strings.Contains(input, "://") {
		input = "https://" + input
	} else {
		return "", false, fmt.Errorf("%s: no such file", input)
	}

	u, err := url.Parse(input)
	if err != nil || u.Host == "" {
		return "", false, fmt.Errorf("invalid URL %q", input)
	}
	return u.String(), true, nil
}
