package ui

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const scrollTopAttr = "data-scroll-top"

// Element is a single node of a Page. Methods on a missing element are
// no-ops.
type Element struct {
	sel *goquery.Selection
}

// NewElement wraps a goquery selection, keeping its first node.
func NewElement(sel *goquery.Selection) *Element {
	if sel == nil {
		return &Element{}
	}
	return &Element{sel: sel.First()}
}

// Exists reports whether the element is present in the document.
func (e *Element) Exists() bool {
	return e != nil && e.sel != nil && e.sel.Length() > 0
}

// Selection returns the underlying goquery selection.
func (e *Element) Selection() *goquery.Selection {
	return e.sel
}

// Find returns the first descendant matching selector.
func (e *Element) Find(selector string) *Element {
	if !e.Exists() {
		return &Element{}
	}
	return &Element{sel: e.sel.Find(selector).First()}
}

// Clear removes all children.
func (e *Element) Clear() {
	if e.Exists() {
		e.sel.Empty()
	}
}

// Children returns the number of child elements.
func (e *Element) Children() int {
	if !e.Exists() {
		return 0
	}
	return e.sel.Children().Length()
}

// Text returns the combined text content.
func (e *Element) Text() string {
	if !e.Exists() {
		return ""
	}
	return e.sel.Text()
}

// SetText replaces the children with a single text node.
func (e *Element) SetText(text string) {
	if e.Exists() {
		e.sel.SetText(text)
	}
}

// Attr returns an attribute value.
func (e *Element) Attr(name string) string {
	if !e.Exists() {
		return ""
	}
	v, _ := e.sel.Attr(name)
	return v
}

// SetAttr sets an attribute.
func (e *Element) SetAttr(name, value string) {
	if e.Exists() {
		e.sel.SetAttr(name, value)
	}
}

// ID returns the id attribute.
func (e *Element) ID() string {
	return e.Attr("id")
}

// SetID sets the id attribute.
func (e *Element) SetID(id string) {
	e.SetAttr("id", id)
}

// HasClass reports whether the element carries class.
func (e *Element) HasClass(class string) bool {
	return e.Exists() && e.sel.HasClass(class)
}

// AddClass adds class.
func (e *Element) AddClass(class string) {
	if e.Exists() {
		e.sel.AddClass(class)
	}
}

// RemoveClass removes class.
func (e *Element) RemoveClass(class string) {
	if e.Exists() {
		e.sel.RemoveClass(class)
	}
}

// Style returns one inline style property.
func (e *Element) Style(property string) string {
	for _, decl := range parseStyle(e.Attr("style")) {
		if decl[0] == property {
			return decl[1]
		}
	}
	return ""
}

// SetStyle sets one inline style property, keeping the others.
func (e *Element) SetStyle(property, value string) {
	if !e.Exists() {
		return
	}

	decls := parseStyle(e.Attr("style"))
	found := false
	for i := range decls {
		if decls[i][0] == property {
			decls[i][1] = value
			found = true
		}
	}
	if !found {
		decls = append(decls, [2]string{property, value})
	}

	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d[0]+": "+d[1])
	}
	e.sel.SetAttr("style", strings.Join(parts, "; "))
}

func parseStyle(style string) [][2]string {
	var decls [][2]string
	for _, part := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		decls = append(decls, [2]string{name, strings.TrimSpace(value)})
	}
	return decls
}

// Append adds nodes as the last children.
func (e *Element) Append(nodes ...*html.Node) {
	if e.Exists() {
		e.sel.AppendNodes(nodes...)
	}
}

// ScrollTop returns the recorded scroll offset in rows.
func (e *Element) ScrollTop() int {
	n, _ := strconv.Atoi(e.Attr(scrollTopAttr))
	return n
}

// ScrollHeight is the scrollable height in rows, one per child.
func (e *Element) ScrollHeight() int {
	return e.Children()
}

// ScrollToBottom scrolls the element to its last child.
func (e *Element) ScrollToBottom() {
	e.SetAttr(scrollTopAttr, strconv.Itoa(e.ScrollHeight()))
}

// OuterHTML renders the element and its children.
func (e *Element) OuterHTML() (string, error) {
	if !e.Exists() {
		return "", nil
	}
	return goquery.OuterHtml(e.sel)
}

// node builders

func newNode(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

func attr(key, value string) html.Attribute {
	return html.Attribute{Key: key, Val: value}
}

func textNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

func appendChildren(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}
