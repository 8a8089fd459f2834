package bizlist_test

import (
	"testing"

	"github.com/fwojciec/bizlist"
	"github.com/stretchr/testify/assert"
)

func TestResolveURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		base       string
		identifier string
		want       string
	}{
		{"absolute https", "https://www.bizbuysell.com", "https://other.com/a", "https://other.com/a"},
		{"absolute upper case", "https://www.bizbuysell.com", "HTTP://other.com/a", "HTTP://other.com/a"},
		{"relative with slash", "https://www.bizbuysell.com", "/business/123", "https://www.bizbuysell.com/business/123"},
		{"relative without slash", "https://www.bizbuysell.com/", "business/123", "https://www.bizbuysell.com/business/123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bizlist.ResolveURL(tt.base, tt.identifier))
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := bizlist.ParseFormat(" XLSX ")
	assert.NoError(t, err)
	assert.Equal(t, bizlist.FormatXLSX, f)

	_, err = bizlist.ParseFormat("parquet")
	assert.Equal(t, bizlist.EINVALID, bizlist.ErrorCode(err))
}

func TestScrapeResult_Counts(t *testing.T) {
	t.Parallel()

	r := &bizlist.ScrapeResult{
		Records:   []*bizlist.Record{bizlist.DefaultSchema().Defaults()},
		Failures:  []bizlist.Failure{{Identifier: "a"}, {Identifier: "b"}},
		Attempted: 3,
	}
	assert.Equal(t, 1, r.Succeeded())
	assert.Equal(t, 2, r.Failed())
}
