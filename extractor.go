package bizlist

// ExtractResult holds the record extracted from one listing page.
type ExtractResult struct {
	// Record always carries the full schema field set.
	Record *Record

	// Incomplete is non-nil when extraction stopped early. Record then
	// holds whatever was found before the failure.
	Incomplete error
}

// Extractor turns listing markup into a canonical record.
type Extractor interface {
	// Extract parses markup fetched from sourceURL. A returned error (code
	// EEXTRACT) means no record could be produced at all, which callers
	// must keep distinct from a thin but valid record.
	Extract(html, sourceURL string) (*ExtractResult, error)
}
