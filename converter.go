package smartscrape

// Converter turns extracted page HTML into the Markdown sent to a model.
type Converter interface {
	// Convert transforms html into Markdown. Relative links are resolved
	// against pageURL when it is non-empty.
	// Returns EINVALID if html is blank.
	Convert(html, pageURL string) (string, error)
}
