// Package htmltomarkdown turns extracted page HTML into Markdown, the form
// in which page content is handed to the LLM.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/smartscrape"
)

// Ensure Converter implements smartscrape.Converter at compile time.
var _ smartscrape.Converter = (*Converter)(nil)

var (
	// Images are reduced to their alt text; sources are often data URIs.
	imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
)

// Converter wraps html-to-markdown to produce Markdown for a model prompt.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter with commonmark and table support.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms html into Markdown. Links are made absolute using
// pageURL, images become their alt text and blank line runs are collapsed.
func (c *Converter) Convert(html, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", smartscrape.Errorf(smartscrape.EINVALID, "empty HTML input")
	}

	var md string
	var err error
	if pageURL != "" {
		md, err = c.conv.ConvertString(html, converter.WithDomain(pageURL))
	} else {
		md, err = c.conv.ConvertString(html)
	}
	if err != nil {
		return "", err
	}
	return shape(md), nil
}

func shape(md string) string {
	md = imagePattern.ReplaceAllString(md, "$1")
	md = blankRuns.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md)
}
