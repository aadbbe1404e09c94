package graph

import (
	"strings"
	"unicode/utf8"
)

// BytesPerToken approximates how many bytes of Markdown make one model token.
const BytesPerToken = 4

// truncationNotice is appended when page content exceeds the token budget.
const truncationNotice = "\n\n[Content truncated due to length...]"

const systemPrompt = `You are a web scraping assistant. You answer questions about a single web page using only the page content you are given.

Rules:
1. Reply with a single valid JSON object and nothing else
2. Choose descriptive snake_case keys that match what the question asks for
3. If a requested value cannot be found on the page, use null
4. Copy names, emails and URLs exactly as they appear on the page
5. Do not invent information that is not present in the content`

// SystemPrompt returns the instruction sent with every extraction.
func SystemPrompt() string {
	return systemPrompt
}

// Page is the reduced form of a fetched page that a prompt is built from.
type Page struct {
	Title       string
	Description string
	Contacts    []string
	Markdown    string
}

// BuildUserPrompt combines the user's question with the page content.
// Only the Markdown counts against maxTokens; 0 means no limit.
func BuildUserPrompt(question, sourceURL string, page Page, maxTokens int) string {
	var b strings.Builder

	b.WriteString("## Question\n")
	b.WriteString(question)
	b.WriteString("\n\n## Source\n")
	b.WriteString(sourceURL)
	b.WriteString("\n")
	if page.Title != "" {
		b.WriteString("\n## Page Title\n")
		b.WriteString(page.Title)
		b.WriteString("\n")
	}
	if page.Description != "" {
		b.WriteString("\n## Page Description\n")
		b.WriteString(page.Description)
		b.WriteString("\n")
	}
	if len(page.Contacts) > 0 {
		b.WriteString("\n## Contact Links\n")
		for _, c := range page.Contacts {
			b.WriteString("- ")
			b.WriteString(c)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n## Page Content\n")
	b.WriteString("```\n")
	b.WriteString(Truncate(page.Markdown, maxTokens))
	b.WriteString("\n```\n")

	return b.String()
}

// Truncate limits content to roughly maxTokens tokens, cutting on a rune
// boundary. maxTokens of 0 or less means no limit.
func Truncate(content string, maxTokens int) string {
	if maxTokens <= 0 || maxTokens > len(content)/BytesPerToken {
		return content
	}
	limit := maxTokens * BytesPerToken
	if len(content) <= limit {
		return content
	}
	for limit > 0 && !utf8.RuneStart(content[limit]) {
		limit--
	}
	return content[:limit] + truncationNotice
}
