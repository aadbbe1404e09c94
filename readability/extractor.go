// Package readability provides a fallback smartscrape.Extractor using
// go-readability.
package readability

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/smartscrape"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// Ensure Extractor implements smartscrape.Extractor at compile time.
var _ smartscrape.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the readable part of rawHTML with links resolved against
// pageURL. When the article has no title the document <title> is used.
func (e *Extractor) Extract(rawHTML, pageURL string) (*smartscrape.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, smartscrape.Errorf(smartscrape.EINVALID, "empty HTML input")
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	hrefs, title := scan(doc)

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		base = u
	}

	article, err := readability.FromDocument(doc, base)
	if err != nil {
		return nil, err
	}

	if t := strings.TrimSpace(article.Title); t != "" {
		title = t
	}

	return &smartscrape.ExtractResult{
		Title:       title,
		Description: article.Excerpt,
		SiteName:    article.SiteName,
		ContentHTML: article.Content,
		Contacts:    smartscrape.ContactsFromLinks(hrefs),
	}, nil
}

// scan returns every anchor href in document order and the text of the
// first <title> element.
func scan(doc *html.Node) (hrefs []string, title string) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				for _, a := range n.Attr {
					if a.Key == "href" {
						hrefs = append(hrefs, a.Val)
					}
				}
			case "title":
				if title == "" && n.FirstChild != nil {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return hrefs, title
}
