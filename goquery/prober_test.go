package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/smartscrape"
	"github.com/fwojciec/smartscrape/goquery"
	"github.com/stretchr/testify/assert"
)

// Ensure Prober implements smartscrape.Prober at compile time.
var _ smartscrape.Prober = (*goquery.Prober)(nil)

func TestProber_RequiresJS(t *testing.T) {
	t.Parallel()

	longText := strings.Repeat("Acme builds rockets and sells them worldwide. ", 10)

	tests := []struct {
		name string
		html string
		want bool
	}{
		{
			name: "static page with content",
			html: `<html><body><main><h1>Acme</h1><p>` + longText + `</p></main><script src="/a.js"></script></body></html>`,
			want: false,
		},
		{
			name: "empty react mount point",
			html: `<html><head><title>Acme</title></head><body><div id="root"></div><script src="/static/js/main.js"></script></body></html>`,
			want: true,
		},
		{
			name: "next.js shell",
			html: `<html><body><div id="__next"></div></body></html>`,
			want: true,
		},
		{
			name: "noscript warning",
			html: `<html><body><noscript>You need to enable JavaScript to run this app.</noscript></body></html>`,
			want: true,
		},
		{
			name: "near-empty body with external scripts",
			html: `<html><body><p>Loading</p><script src="/bundle.js"></script></body></html>`,
			want: true,
		},
		{
			name: "short static page without scripts",
			html: `<html><body><h1>Acme</h1><p>Contact: info@acme.com</p></body></html>`,
			want: false,
		},
		{
			name: "mount point with server-rendered content",
			html: `<html><body><div id="__next"><p>` + longText + `</p></div></body></html>`,
			want: false,
		},
		{
			name: "gitbook generator",
			html: `<html><head><meta name="generator" content="GitBook"></head><body><p>` + longText + `</p></body></html>`,
			want: true,
		},
		{
			name: "inline script text is not visible text",
			html: `<html><body><div id="app"></div><script>` + longText + `</script></body></html>`,
			want: true,
		},
	}

	p := goquery.NewProber()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, p.RequiresJS(tt.html))
		})
	}
}
