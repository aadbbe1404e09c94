package smartscrape

// Prober inspects statically fetched HTML to decide how a page must be
// fetched.
type Prober interface {
	// RequiresJS reports whether the HTML is a client-rendered shell whose
	// content only appears after JavaScript runs.
	RequiresJS(html string) bool
}
