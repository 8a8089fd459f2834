package goquery

import (
	"slices"

	"github.com/PuerkitoBio/goquery"
)

// InsertStage adds a discovery stage at index i so tests can simulate a
// stage failing partway through a document.
func InsertStage(e *Extractor, i int, name string, run func()) {
	e.stages = slices.Insert(e.stages, i, stage{
		name: name,
		run:  func(*goquery.Document, fieldSet) { run() },
	})
}
