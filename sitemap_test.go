package bizlist_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/bizlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("nil filter passes everything", func(t *testing.T) {
		t.Parallel()

		var f *bizlist.URLFilter
		assert.True(t, f.Match("https://example.com/anything"))
	})

	t.Run("include then exclude", func(t *testing.T) {
		t.Parallel()

		f := &bizlist.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/business-opportunity/`)},
			Exclude: []*regexp.Regexp{regexp.MustCompile(`/franchise`)},
		}

		assert.True(t, f.Match("https://example.com/business-opportunity/bakery/123"))
		assert.False(t, f.Match("https://example.com/broker/jane"))
		assert.False(t, f.Match("https://example.com/business-opportunity/franchise-x/9"))
	})
}

func TestNewURLFilter(t *testing.T) {
	t.Parallel()

	f, err := bizlist.NewURLFilter([]string{`/listing/\d+`}, nil)
	require.NoError(t, err)
	assert.True(t, f.Match("https://example.com/listing/42"))
	assert.False(t, f.Match("https://example.com/listing/new"))

	_, err = bizlist.NewURLFilter([]string{`(`}, nil)
	assert.Equal(t, bizlist.EINVALID, bizlist.ErrorCode(err))
}
