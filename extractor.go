package smartscrape

import (
	"net/url"
	"strings"
)

// ExtractResult is the part of a fetched page worth showing a model.
type ExtractResult struct {
	Title       string
	Description string
	SiteName    string

	// ContentHTML is the main content with boilerplate removed. Links are
	// kept and resolved against the page URL.
	ContentHTML string

	// Contacts are the email addresses and phone numbers linked anywhere
	// on the page, including footers the extractor dropped.
	Contacts []string
}

// Extractor reduces a fetched page to its main content.
type Extractor interface {
	// Extract processes raw HTML fetched from pageURL.
	// Returns EINVALID if html is blank.
	Extract(html, pageURL string) (*ExtractResult, error)
}

// ContactsFromLinks returns the mailto: and tel: targets among hrefs in
// document order. Query strings are dropped, emails are lowercased and
// duplicates removed.
func ContactsFromLinks(hrefs []string) []string {
	var contacts []string
	seen := make(map[string]bool)
	for _, href := range hrefs {
		href = strings.TrimSpace(href)
		scheme, rest, ok := strings.Cut(href, ":")
		if !ok {
			continue
		}

		var contact string
		switch strings.ToLower(scheme) {
		case "mailto":
			addr, _, _ := strings.Cut(rest, "?")
			if unescaped, err := url.PathUnescape(addr); err == nil {
				addr = unescaped
			}
			contact = strings.ToLower(strings.TrimSpace(addr))
		case "tel":
			contact = strings.TrimSpace(rest)
		}
		if contact == "" || seen[contact] {
			continue
		}
		seen[contact] = true
		contacts = append(contacts, contact)
	}
	return contacts
}
