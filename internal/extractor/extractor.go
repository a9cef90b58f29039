// Package extractor pulls structured data out of HTML bodies using goquery.
package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mdevereaux/spiderling/internal/crawler"
)

// GoqueryExtractor implements crawler.Extractor. It is stateless and safe
// for concurrent use; every call parses the body fresh, so the same body
// always yields the same extraction.
type GoqueryExtractor struct{}

// New constructs a GoqueryExtractor.
func New() *GoqueryExtractor {
	return &GoqueryExtractor{}
}

// Extract returns the h1 headings and the raw a[href] values in document
// order. Hrefs are passed through exactly as written; resolution against the
// page URL happens later.
func (x *GoqueryExtractor) Extract(body []byte) (crawler.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return crawler.Extraction{}, fmt.Errorf("parse html: %w", err)
	}

	var out crawler.Extraction
	doc.Find("h1").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			out.Headers = append(out.Headers, text)
		}
	})
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		out.Links = append(out.Links, href)
	})
	return out, nil
}
