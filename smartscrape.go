// Package smartscrape provides a small interactive tool that extracts
// structured data from a web page according to a natural-language prompt.
// A scraper-graph fetches the page, reduces it to readable Markdown, and
// asks a large language model to answer the prompt as a JSON object.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, openai/, keyring/).
package smartscrape
