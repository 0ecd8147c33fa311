package ui

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

//go:embed assets/page.html
var pageSkeleton string

// Well-known selectors of the chat page.
const (
	SelectorSessionsList    = "#sessions-list"
	SelectorChatHistory     = "#chatbot-chat-history"
	SelectorMainGrid        = ".main-grid-layout"
	SelectorShowcase        = "#chatbot-showcase"
	SelectorInterface       = "#chatbot-interface"
	SelectorBottomBar       = ".bottom-bar"
	SelectorInputHeader     = ".chat-input-header"
	SelectorChatbotName     = ".chatbot-info h2"
	SelectorChatbotAvatar   = ".chatbot-header .chatbot-avatar"
	SelectorSessionItem     = ".session-item"
	selectorHeaderAvatar    = ".bot-avatar"
	selectorHeaderModelName = ".models-name"
)

// AssistantProfile is the bot the chat view is currently showing.
type AssistantProfile struct {
	Name   string
	Avatar string
}

// Page is a chat page document.
type Page struct {
	doc *goquery.Document

	// Profile is nil on pages without an assistant profile; header elements
	// are then left untouched when a session is selected.
	Profile *AssistantProfile
}

// NewPage returns the default chat page with an assistant profile.
func NewPage() *Page {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageSkeleton))
	if err != nil {
		panic(fmt.Sprintf("ui: invalid page skeleton: %v", err))
	}
	return &Page{
		doc:     doc,
		Profile: &AssistantProfile{Name: "Articuno.AI", Avatar: DefaultAvatar},
	}
}

// ParsePage parses an existing page. The result has no assistant profile.
func ParsePage(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return &Page{doc: doc}, nil
}

// Document returns the underlying goquery document.
func (p *Page) Document() *goquery.Document {
	return p.doc
}

// Find returns the first element matching selector. The element may not
// exist; check Exists.
func (p *Page) Find(selector string) *Element {
	return &Element{sel: p.doc.Find(selector).First()}
}

// ChatHistory returns the chat history container.
func (p *Page) ChatHistory() *Element {
	return p.Find(SelectorChatHistory)
}

// SessionsList returns the sidebar container.
func (p *Page) SessionsList() *Element {
	return p.Find(SelectorSessionsList)
}

// HTML renders the whole document.
func (p *Page) HTML() (string, error) {
	return p.doc.Html()
}
