// Package goquery provides HTML inspection helpers built on goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/smartscrape"
)

// DefaultMinTextLength is the amount of visible body text below which a
// page with client-side rendering markers is treated as an empty shell.
const DefaultMinTextLength = 200

// mountSelectors match the root elements single-page app frameworks render into.
var mountSelectors = []string{
	"#root",
	"#app",
	"#__next",
	"#__nuxt",
	"#___gatsby",
	"[data-reactroot]",
	"[ng-version]",
	"app-root",
}

// jsGenerators are meta generator values for sites known to need rendering.
var jsGenerators = []string{"gitbook", "wix.com", "framer", "webflow"}

// Ensure Prober implements smartscrape.Prober at compile time.
var _ smartscrape.Prober = (*Prober)(nil)

// Prober decides whether statically fetched HTML must be rendered in a
// browser before its content can be extracted.
type Prober struct {
	minTextLength int
}

// NewProber creates a new Prober.
func NewProber() *Prober {
	return &Prober{minTextLength: DefaultMinTextLength}
}

// RequiresJS reports whether html looks like a client-rendered shell.
// Unparseable input returns false so the static HTML is used as-is.
func (p *Prober) RequiresJS(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}

	if p.hasJSGenerator(doc) {
		return true
	}

	if visibleTextLength(doc) >= p.minTextLength {
		return false
	}

	for _, sel := range mountSelectors {
		if doc.Find(sel).Length() > 0 {
			return true
		}
	}

	noscript := strings.ToLower(doc.Find("noscript").Text())
	if strings.Contains(noscript, "javascript") {
		return true
	}

	// A near-empty body that still loads scripts is most likely rendered
	// client-side.
	return doc.Find("body script[src]").Length() > 0
}

// hasJSGenerator checks the meta generator tag for platforms that render
// their content in the browser.
func (p *Prober) hasJSGenerator(doc *goquery.Document) bool {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})
	if generator == "" {
		return false
	}
	for _, g := range jsGenerators {
		if strings.Contains(generator, g) {
			return true
		}
	}
	return false
}

// visibleTextLength counts the non-whitespace body text outside of
// script, style, noscript and template elements.
func visibleTextLength(doc *goquery.Document) int {
	body := doc.Find("body").Clone()
	body.Find("script, style, noscript, template").Remove()
	return len(strings.Join(strings.Fields(body.Text()), " "))
}
