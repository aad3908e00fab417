package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document - разобранная HTML страница с типизированными запросами вместо прямой работы с goquery.
type Document struct {
	doc *goquery.Document
}

// Node is a single element of a Document. The zero Node matches nothing.
type Node struct {
	sel *goquery.Selection
}

func ParseDocument(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

func (d *Document) Root() Node {
	return Node{sel: d.doc.Selection}
}

// FindOne возвращает первый потомок, подходящий под селектор
func (n Node) FindOne(selector string) (Node, bool) {
	if n.sel == nil {
		return Node{}, false
	}
	found := n.sel.Find(selector).First()
	if found.Length() == 0 {
		return Node{}, false
	}
	return Node{sel: found}, true
}

// Parent возвращает непосредственного родителя элемента
func (n Node) Parent() (Node, bool) {
	if n.sel == nil {
		return Node{}, false
	}
	parent := n.sel.Parent()
	if parent.Length() == 0 {
		return Node{}, false
	}
	return Node{sel: parent}, true
}

// Each calls fn for every descendant matching selector, in document order.
func (n Node) Each(selector string, fn func(Node)) {
	if n.sel == nil {
		return
	}
	n.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		fn(Node{sel: s})
	})
}

// Text returns the element text with surrounding whitespace trimmed and inner runs collapsed.
func (n Node) Text() string {
	if n.sel == nil {
		return ""
	}
	return strings.Join(strings.Fields(n.sel.Text()), " ")
}

// Attr returns the trimmed attribute value, or "" when absent.
func (n Node) Attr(name string) string {
	if n.sel == nil {
		return ""
	}
	val, _ := n.sel.Attr(name)
	return strings.TrimSpace(val)
}
