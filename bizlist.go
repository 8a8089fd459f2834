// Package bizlist extracts business-for-sale listings from loosely structured
// HTML pages into records with a fixed, canonical field set suitable for
// tabular export.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package bizlist
