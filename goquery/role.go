package goquery

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// role classifies an element by the part it plays in a label/value layout.
type role int

const (
	roleNone role = iota
	roleTerm
	roleHeader
	roleBold
	roleSpan
	roleLabel
	roleDefinition
	roleCell
)

func roleOf(n *html.Node) role {
	if n == nil || n.Type != html.ElementNode {
		return roleNone
	}
	switch n.DataAtom {
	case atom.Dt:
		return roleTerm
	case atom.Th:
		return roleHeader
	case atom.Strong, atom.B:
		return roleBold
	case atom.Span:
		return roleSpan
	case atom.Label:
		return roleLabel
	case atom.Dd:
		return roleDefinition
	case atom.Td:
		return roleCell
	default:
		return roleNone
	}
}

// isLabel reports whether elements of this role may carry a field label.
func (r role) isLabel() bool {
	switch r {
	case roleTerm, roleHeader, roleBold, roleSpan, roleLabel:
		return true
	default:
		return false
	}
}

// isValue reports whether elements of this role hold the value paired with
// a term or header.
func (r role) isValue() bool {
	return r == roleDefinition || r == roleCell
}

// valueFor locates the text paired with a label element. A label inside a
// term or header cell takes the next definition or data cell. Otherwise the
// first later sibling with text wins, starting with the immediate one.
func valueFor(label *html.Node) string {
	if parent := label.Parent; parent != nil {
		switch roleOf(parent) {
		case roleTerm, roleHeader:
			for s := parent.NextSibling; s != nil; s = s.NextSibling {
				if roleOf(s).isValue() {
					if text := nodeText(s); text != "" {
						return text
					}
					break
				}
			}
		}
	}

	for s := label.NextSibling; s != nil; s = s.NextSibling {
		if text := nodeText(s); text != "" {
			return text
		}
	}
	return ""
}

// nodeText joins the trimmed text nodes under n with single spaces.
// Comments and script, style and template contents are skipped.
func nodeText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Template:
				return
			}
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return strings.Join(parts, " ")
}

// walkElements visits element nodes under n in document order.
func walkElements(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, fn)
	}
}
