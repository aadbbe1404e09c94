// Package trafilatura provides the primary smartscrape.Extractor, removing
// page boilerplate with go-trafilatura.
package trafilatura

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/smartscrape"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements smartscrape.Extractor at compile time.
var _ smartscrape.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	// IncludeTables keeps tables in the content. Pricing and team pages
	// often carry the answer in one.
	IncludeTables bool
}

// NewExtractor creates a new Extractor that keeps tables.
func NewExtractor() *Extractor {
	return &Extractor{IncludeTables: true}
}

// Extract parses rawHTML once, collects its contact links, and hands the
// tree to trafilatura. Links in the content are kept.
func (e *Extractor) Extract(rawHTML, pageURL string) (*smartscrape.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, smartscrape.Errorf(smartscrape.EINVALID, "empty HTML input")
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	contacts := smartscrape.ContactsFromLinks(hrefs(doc))

	opts := trafilatura.Options{
		EnableFallback:  true,
		IncludeLinks:    true,
		ExcludeComments: true,
		ExcludeTables:   !e.IncludeTables,
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.ExtractDocument(doc, opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &smartscrape.ExtractResult{
		Title:       result.Metadata.Title,
		Description: result.Metadata.Description,
		SiteName:    result.Metadata.Sitename,
		ContentHTML: contentHTML,
		Contacts:    contacts,
	}, nil
}

// hrefs returns the href of every anchor below n in document order.
func hrefs(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" {
					out = append(out, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
