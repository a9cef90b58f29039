package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// ResolveHref turns a discovered href into the URL to schedule. Only
// host-relative hrefs (a single leading slash) are resolved against the base
// page: the base's scheme and host are kept and the path is replaced, never
// appended. Absolute hrefs, protocol-relative hrefs (//host/path), and
// path-relative hrefs (../x) pass through unchanged.
func ResolveHref(baseURL, href string) (string, error) {
	if !strings.HasPrefix(href, "/") || strings.HasPrefix(href, "//") {
		return href, nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("base url %q has no scheme or host", baseURL)
	}
	return base.Scheme + "://" + base.Host + href, nil
}
