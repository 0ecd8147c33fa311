package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/harun/articuno/pkg/sessionapi"
	"golang.org/x/net/html"
)

// Sidebar texts.
const (
	DefaultTitle        = "New conversation"
	NoSessionsText      = "No history yet"
	DeleteConfirmPrompt = "Delete this conversation?"

	maxTitleLen = 60
	keepTitle   = 57

	classActive      = "active"
	classSessionItem = "session-item"
	sessionIDAttr    = "data-session-id"
)

// TruncateTitle returns the sidebar title of a query: the query itself, or
// its first 57 characters plus "..." when it is longer than 60. An empty
// query reads as DefaultTitle.
func TruncateTitle(query string) string {
	if query == "" {
		return DefaultTitle
	}
	r := []rune(query)
	if len(r) > maxTitleLen {
		return string(r[:keepTitle]) + "..."
	}
	return query
}

// FullTitle is the hover text of a sidebar row.
func FullTitle(query string) string {
	if query == "" {
		return DefaultTitle
	}
	return query
}

// SessionMeta is the "{n} messages • {ago}" line of a sidebar row.
func SessionMeta(s sessionapi.SessionSummary, now time.Time) string {
	return fmt.Sprintf("%d messages • %s", s.MessageCount, TimeAgo(now, s.LastActivity.Time))
}

// SidebarHandlers are the row callbacks. Either may be nil.
type SidebarHandlers struct {
	// Select runs when a row is clicked.
	Select func(ctx context.Context, row *Element, s sessionapi.SessionSummary)
	// Delete runs when a row's delete button is clicked.
	Delete func(ctx context.Context, s sessionapi.SessionSummary)
}

type sidebarRow struct {
	el      *Element
	summary sessionapi.SessionSummary
}

// Sidebar is a rendered session list and its row callbacks.
type Sidebar struct {
	container *Element
	handlers  SidebarHandlers
	rows      map[string]sidebarRow
	order     []string
}

// NewSidebar returns an empty sidebar bound to container.
func NewSidebar(container *Element, handlers SidebarHandlers) *Sidebar {
	return &Sidebar{
		container: container,
		handlers:  handlers,
		rows:      make(map[string]sidebarRow),
	}
}

// RenderSessionsList renders sessions into container and returns the
// sidebar dispatching row clicks to handlers.
func RenderSessionsList(container *Element, sessions []sessionapi.SessionSummary, currentID string, now time.Time, handlers SidebarHandlers) *Sidebar {
	sb := NewSidebar(container, handlers)
	sb.Render(sessions, currentID, now)
	return sb
}

// Render replaces the container content with one row per session, or the
// "No history yet" placeholder. The row of currentID is marked active.
// Rows of an earlier render are dropped.
func (s *Sidebar) Render(sessions []sessionapi.SessionSummary, currentID string, now time.Time) {
	s.rows = make(map[string]sidebarRow, len(sessions))
	s.order = nil

	s.container.Clear()
	if len(sessions) == 0 {
		s.container.Append(appendChildren(
			newNode("div", attr("class", "no-sessions")),
			textNode(NoSessionsText),
		))
		return
	}

	for _, summary := range sessions {
		s.container.Append(sessionRow(summary, summary.SessionID == currentID, now))
		row := &Element{}
		if s.container.Exists() {
			row = NewElement(s.container.Selection().Children().Last())
		}
		if _, dup := s.rows[summary.SessionID]; !dup {
			s.order = append(s.order, summary.SessionID)
		}
		s.rows[summary.SessionID] = sidebarRow{el: row, summary: summary}
	}
}

func sessionRow(s sessionapi.SessionSummary, active bool, now time.Time) *html.Node {
	class := classSessionItem
	if active {
		class += " " + classActive
	}

	title := appendChildren(
		newNode("div", attr("class", "session-title"), attr("title", FullTitle(s.Query()))),
		textNode(TruncateTitle(s.Query())),
	)
	meta := appendChildren(
		newNode("div", attr("class", "session-meta")),
		textNode(SessionMeta(s, now)),
	)
	deleteBtn := appendChildren(
		newNode("button", attr("class", "session-delete-btn"), attr(sessionIDAttr, s.SessionID)),
		newNode("i", attr("class", "fas fa-trash")),
	)

	return appendChildren(
		newNode("div", attr("class", class), attr(sessionIDAttr, s.SessionID)),
		appendChildren(newNode("div", attr("class", "session-info")), title, meta),
		deleteBtn,
	)
}

// Len returns the number of session rows.
func (s *Sidebar) Len() int {
	return len(s.order)
}

// SessionIDs returns the row ids in display order.
func (s *Sidebar) SessionIDs() []string {
	return append([]string(nil), s.order...)
}

// Row returns the element of a session row.
func (s *Sidebar) Row(sessionID string) (*Element, bool) {
	r, ok := s.rows[sessionID]
	if !ok {
		return &Element{}, false
	}
	return r.el, true
}

// Click dispatches a row click. It reports whether the row exists.
func (s *Sidebar) Click(ctx context.Context, sessionID string) bool {
	r, ok := s.rows[sessionID]
	if !ok {
		return false
	}
	if s.handlers.Select != nil {
		s.handlers.Select(ctx, r.el, r.summary)
	}
	return true
}

// ClickDelete dispatches a delete button click. The row click handler is
// not run.
func (s *Sidebar) ClickDelete(ctx context.Context, sessionID string) bool {
	r, ok := s.rows[sessionID]
	if !ok {
		return false
	}
	if s.handlers.Delete != nil {
		s.handlers.Delete(ctx, r.summary)
	}
	return true
}

// Container returns the element the list was rendered into.
func (s *Sidebar) Container() *Element {
	return s.container
}
