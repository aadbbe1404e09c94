package smartscrape_test

import (
	"testing"

	"github.com/fwojciec/smartscrape"
	"github.com/stretchr/testify/assert"
)

func TestContactsFromLinks(t *testing.T) {
	t.Parallel()

	t.Run("keeps mail and phone targets in order", func(t *testing.T) {
		t.Parallel()

		got := smartscrape.ContactsFromLinks([]string{
			"/about",
			"mailto:Sales@Acme.com?subject=Quote",
			"https://acme.com/contact",
			" tel:+1-555-0100 ",
			"MAILTO:info%40acme.com",
		})

		assert.Equal(t, []string{"sales@acme.com", "+1-555-0100", "info@acme.com"}, got)
	})

	t.Run("drops duplicates and empty targets", func(t *testing.T) {
		t.Parallel()

		got := smartscrape.ContactsFromLinks([]string{
			"mailto:info@acme.com",
			"mailto:INFO@acme.com",
			"mailto:",
			"tel:",
		})

		assert.Equal(t, []string{"info@acme.com"}, got)
	})

	t.Run("returns nil without contacts", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, smartscrape.ContactsFromLinks([]string{"/", "#top", "javascript:void(0)"}))
	})
}
