// Package goquery implements the listing field extraction engine on top of
// goquery and golang.org/x/net/html.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bizlist"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Extractor implements bizlist.Extractor at compile time.
var _ bizlist.Extractor = (*Extractor)(nil)

// stage discovers some fields in a parsed document. Stages run in order and
// only fill fields that are still unset.
type stage struct {
	name string
	run  func(doc *goquery.Document, fields fieldSet)
}

// Extractor extracts canonical listing records from HTML.
// Extractor is safe for concurrent use by multiple goroutines.
type Extractor struct {
	schema *bizlist.Schema
	stages []stage
}

// NewExtractor returns an Extractor that resolves labels with schema.
// A nil schema means bizlist.DefaultSchema.
func NewExtractor(schema *bizlist.Schema) *Extractor {
	if schema == nil {
		schema = bizlist.DefaultSchema()
	}
	e := &Extractor{schema: schema}
	e.stages = []stage{
		{"title", extractTitle},
		{"location", extractLocation},
		{"labels", e.extractLabels},
		{"description", extractDescription},
	}
	return e
}

// Extract parses markup and returns the listing record for sourceURL.
//
// Empty markup, or markup without a single element beyond the implied
// html/head/body skeleton, is an EEXTRACT error. A stage that fails
// internally ends discovery early and is reported through
// ExtractResult.Incomplete; the fields found so far are kept.
func (e *Extractor) Extract(markup, sourceURL string) (*bizlist.ExtractResult, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, bizlist.Errorf(bizlist.EEXTRACT, "empty document from %s", sourceURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, bizlist.Errorf(bizlist.EEXTRACT, "failed to parse HTML from %s: %v", sourceURL, err)
	}
	if !hasContent(doc) {
		return nil, bizlist.Errorf(bizlist.EEXTRACT, "no markup elements in document from %s", sourceURL)
	}

	fields := make(fieldSet)
	var incomplete error
	for _, s := range e.stages {
		if err := runStage(s, doc, fields); err != nil {
			incomplete = err
			break
		}
	}

	coerceNumbers(fields)
	fields[bizlist.FieldLinkToDeal] = bizlist.Text(sourceURL)

	return &bizlist.ExtractResult{
		Record:     e.schema.Merge(fields),
		Incomplete: incomplete,
	}, nil
}

func runStage(s stage, doc *goquery.Document, fields fieldSet) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = bizlist.Errorf(bizlist.EEXTRACT, "%s extraction failed: %v", s.name, r)
		}
	}()
	s.run(doc, fields)
	return nil
}

// hasContent reports whether the parser found any element other than the
// html, head and body elements it synthesizes for arbitrary input.
func hasContent(doc *goquery.Document) bool {
	found := false
	for _, n := range doc.Nodes {
		walkElements(n, func(n *html.Node) {
			switch n.DataAtom {
			case atom.Html, atom.Head, atom.Body:
			default:
				found = true
			}
		})
	}
	return found
}

// fieldSet accumulates extracted values by canonical field.
type fieldSet map[string]bizlist.Value

// setText stores the cleaned text unless the field is already set or the
// text resolves to absent.
func (f fieldSet) setText(field, raw string) {
	if _, ok := f[field]; ok {
		return
	}
	if v, ok := bizlist.CleanText(raw); ok {
		f[field] = bizlist.Text(v)
	}
}

func extractTitle(doc *goquery.Document, fields fieldSet) {
	sel := doc.Find("h1").First()
	if sel.Length() == 0 {
		sel = doc.Find("h2").First()
	}
	if sel.Length() == 0 {
		return
	}
	fields.setText(bizlist.FieldTitle, nodeText(sel.Get(0)))
}

func extractLocation(doc *goquery.Document, fields fieldSet) {
	el := firstWithClass(doc.Find("[class]"), "location")
	if el.Length() == 0 {
		if content, ok := doc.Find(`meta[property="business:location"]`).First().Attr("content"); ok {
			fields.setText(bizlist.FieldLocation, content)
		}
		return
	}

	text, ok := bizlist.CleanText(nodeText(el.Get(0)))
	if !ok {
		return
	}
	fields.setText(bizlist.FieldLocation, text)

	var parts []string
	for _, p := range strings.Split(text, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) >= 2 {
		fields.setText(bizlist.FieldState, parts[len(parts)-1])
	}
}

func (e *Extractor) extractLabels(doc *goquery.Document, fields fieldSet) {
	for _, root := range doc.Nodes {
		walkElements(root, func(n *html.Node) {
			if !roleOf(n).isLabel() {
				return
			}
			field, ok := e.schema.Canonicalize(nodeText(n))
			if !ok {
				return
			}
			if _, set := fields[field]; set {
				return
			}
			if value := valueFor(n); value != "" {
				fields.setText(field, value)
			}
		})
	}
}

func extractDescription(doc *goquery.Document, fields fieldSet) {
	if _, ok := fields[bizlist.FieldIndustryDetails]; ok {
		return
	}
	sel := doc.Find("section#description").First()
	if sel.Length() == 0 {
		sel = doc.Find("div#description").First()
	}
	if sel.Length() == 0 {
		sel = firstWithClass(doc.Find("div[class]"), "description")
	}
	if sel.Length() == 0 {
		return
	}
	fields.setText(bizlist.FieldIndustryDetails, nodeText(sel.Get(0)))
}

// firstWithClass returns the first element of sel whose class attribute
// contains substr in any case.
func firstWithClass(sel *goquery.Selection, substr string) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return strings.Contains(strings.ToLower(class), substr)
	}).First()
}

// coerceNumbers converts money fields to numbers and the employee count to
// an integer. Values that do not parse become absent.
func coerceNumbers(fields fieldSet) {
	for _, field := range bizlist.MoneyFields {
		text, ok := fields[field].Text()
		if !ok {
			continue
		}
		if f, ok := bizlist.ParseMoney(text); ok {
			fields[field] = bizlist.Number(f)
		} else {
			delete(fields, field)
		}
	}

	if text, ok := fields[bizlist.FieldEmployees].Text(); ok {
		if n, ok := bizlist.ParseInteger(text); ok {
			fields[bizlist.FieldEmployees] = bizlist.Integer(n)
		} else {
			delete(fields, bizlist.FieldEmployees)
		}
	}
}
