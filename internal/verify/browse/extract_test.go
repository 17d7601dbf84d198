package browse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"licensure/internal/verify/browse"
	"licensure/internal/verify/browse/browsetest"
)

func TestExtractDetails(t *testing.T) {
	p := testProfile()

	t.Run("label following wins over table cell", func(t *testing.T) {
		c := browsetest.NewContainer("http://board.test/detail",
			&browsetest.Node{Tag: "span", Txt: "License Number"},
			&browsetest.Node{Tag: "span", Txt: "1234567-1205"},
			&browsetest.Node{Tag: "th", Txt: "License Number", Sib: &browsetest.Node{Tag: "td", Txt: "should-not-win"}},
		)

		d, ok := browse.ExtractDetails(c, p)
		require.True(t, ok)
		assert.Equal(t, "1234567-1205", d.LicenseNumber)
	})

	t.Run("table cells", func(t *testing.T) {
		c := browsetest.NewContainer("http://board.test/detail",
			&browsetest.Node{Tag: "th", Txt: "Status", Sib: &browsetest.Node{Tag: "td", Txt: "Active"}},
			&browsetest.Node{Tag: "th", Txt: "Issue Date", Sib: &browsetest.Node{Tag: "td", Txt: "05/01/2015"}},
			&browsetest.Node{Tag: "th", Txt: "Expiration Date", Sib: &browsetest.Node{Tag: "td", Txt: "01/31/2026"}},
		)

		d, ok := browse.ExtractDetails(c, p)
		require.True(t, ok)
		assert.Empty(t, d.LicenseNumber)
		assert.Equal(t, "Active", d.Status)
		assert.Equal(t, "05/01/2015", d.IssueDate)
		assert.Equal(t, "01/31/2026", d.ExpiryDate)
	})

	t.Run("definition list", func(t *testing.T) {
		c := browsetest.NewContainer("http://board.test/detail",
			&browsetest.Node{Tag: "dt", Txt: "License #", Sib: &browsetest.Node{Tag: "dd", Txt: "9000001-0001"}},
		)

		d, ok := browse.ExtractDetails(c, p)
		require.True(t, ok)
		assert.Equal(t, "9000001-0001", d.LicenseNumber)
	})

	t.Run("labels without values are skipped", func(t *testing.T) {
		// The first matching label has nothing after it; the second carries
		// the value.
		c := browsetest.NewContainer("http://board.test/detail",
			&browsetest.Node{Tag: "b", Txt: "Status", Sib: &browsetest.Node{Tag: "td", Txt: "  "}},
			&browsetest.Node{Tag: "b", Txt: "Status:", Sib: &browsetest.Node{Tag: "td", Txt: "Expired"}},
		)
		assert.Equal(t, "Expired", browse.ValueFor(c, p.StatusPattern))
	})

	t.Run("nothing recovered reports false", func(t *testing.T) {
		c := browsetest.NewContainer("http://board.test/detail",
			&browsetest.Node{Tag: "h1", Txt: "Licensee Detail"},
		)
		d, ok := browse.ExtractDetails(c, p)
		assert.False(t, ok)
		assert.True(t, d.Empty())
	})

	t.Run("values are whitespace normalized", func(t *testing.T) {
		c := browsetest.NewContainer("http://board.test/detail",
			&browsetest.Node{Tag: "strong", Txt: "Status", Sib: &browsetest.Node{Tag: "span", Txt: "  Active\n  Probation "}},
		)
		assert.Equal(t, "Active Probation", browse.ValueFor(c, p.StatusPattern))
	})
}
