package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harun/articuno/pkg/sessionapi"
)

func summary(id, bot string, query *string, count int, last time.Time) sessionapi.SessionSummary {
	return sessionapi.SessionSummary{
		SessionID:     id,
		BotName:       bot,
		LastUserQuery: query,
		MessageCount:  count,
		LastActivity:  sessionapi.NewTimestamp(last),
	}
}

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"empty", "", DefaultTitle},
		{"short", "hello", "hello"},
		{"exactly 60", strings.Repeat("a", 60), strings.Repeat("a", 60)},
		{"61 chars", strings.Repeat("b", 61), strings.Repeat("b", 57) + "..."},
		{"multibyte", strings.Repeat("é", 61), strings.Repeat("é", 57) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateTitle(tt.query))
		})
	}
}

func TestRenderSessionsList(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("empty list shows placeholder", func(t *testing.T) {
		p := NewPage()
		list := p.SessionsList()

		sb := RenderSessionsList(list, nil, "", now, SidebarHandlers{})

		assert.Equal(t, 0, sb.Len())
		assert.Equal(t, NoSessionsText, list.Find("div.no-sessions").Text())
	})

	t.Run("rows carry title meta and delete button", func(t *testing.T) {
		p := NewPage()
		list := p.SessionsList()
		long := strings.Repeat("x", 61)

		sb := RenderSessionsList(list, []sessionapi.SessionSummary{
			summary("s1", "GPT-4o", &long, 4, now.Add(-2*time.Hour)),
			summary("s2", "Grok-3", nil, 0, now.Add(-30*time.Second)),
		}, "s2", now, SidebarHandlers{})

		assert.Equal(t, []string{"s1", "s2"}, sb.SessionIDs())

		row1, ok := sb.Row("s1")
		require.True(t, ok)
		title := row1.Find("div.session-info div.session-title")
		assert.Equal(t, strings.Repeat("x", 57)+"...", title.Text())
		assert.Equal(t, long, title.Attr("title"))
		assert.Equal(t, "4 messages • 2h ago", row1.Find("div.session-meta").Text())
		assert.True(t, row1.Find("button.session-delete-btn i.fas.fa-trash").Exists())
		assert.False(t, row1.HasClass("active"))

		row2, _ := sb.Row("s2")
		assert.Equal(t, DefaultTitle, row2.Find("div.session-title").Text())
		assert.Equal(t, DefaultTitle, row2.Find("div.session-title").Attr("title"))
		assert.Equal(t, "0 messages • just now", row2.Find("div.session-meta").Text())
		assert.True(t, row2.HasClass("active"))
		assert.Equal(t, "s2", ActiveSessionID(p))
	})

	t.Run("re-render replaces rows", func(t *testing.T) {
		p := NewPage()
		list := p.SessionsList()
		q := "first"

		RenderSessionsList(list, []sessionapi.SessionSummary{summary("a", "GPT-4o", &q, 1, now)}, "", now, SidebarHandlers{})
		RenderSessionsList(list, nil, "", now, SidebarHandlers{})

		assert.Equal(t, 1, list.Children())
		assert.False(t, list.Find(".session-item").Exists())
	})
}

func TestSidebarClicks(t *testing.T) {
	now := time.Now()
	p := NewPage()
	q := "hello"

	var selected, deleted []string
	sb := RenderSessionsList(p.SessionsList(), []sessionapi.SessionSummary{
		summary("s1", "GPT-4o", &q, 2, now),
	}, "", now, SidebarHandlers{
		Select: func(_ context.Context, row *Element, s sessionapi.SessionSummary) {
			assert.Equal(t, "s1", row.Attr("data-session-id"))
			selected = append(selected, s.SessionID)
		},
		Delete: func(_ context.Context, s sessionapi.SessionSummary) {
			deleted = append(deleted, s.SessionID)
		},
	})

	assert.True(t, sb.Click(context.Background(), "s1"))
	assert.True(t, sb.ClickDelete(context.Background(), "s1"))
	assert.False(t, sb.Click(context.Background(), "missing"))
	assert.False(t, sb.ClickDelete(context.Background(), "missing"))

	assert.Equal(t, []string{"s1"}, selected)
	assert.Equal(t, []string{"s1"}, deleted)
}

func TestSidebarNilHandlers(t *testing.T) {
	p := NewPage()
	sb := RenderSessionsList(p.SessionsList(), []sessionapi.SessionSummary{
		summary("s1", "GPT-4o", nil, 0, time.Now()),
	}, "", time.Now(), SidebarHandlers{})

	assert.True(t, sb.Click(context.Background(), "s1"))
	assert.True(t, sb.ClickDelete(context.Background(), "s1"))
}

func TestSidebarRender(t *testing.T) {
	now := time.Now()
	p := NewPage()
	sb := NewSidebar(p.SessionsList(), SidebarHandlers{})

	sb.Render([]sessionapi.SessionSummary{
		summary("a", "GPT-4o", nil, 0, now),
		summary("b", "GPT-4o", nil, 0, now),
	}, "", now)
	require.Equal(t, 2, sb.Len())

	sb.Render([]sessionapi.SessionSummary{summary("b", "GPT-4o", nil, 0, now)}, "b", now)

	assert.Equal(t, []string{"b"}, sb.SessionIDs())
	_, ok := sb.Row("a")
	assert.False(t, ok)
	assert.False(t, sb.Click(context.Background(), "a"))
	assert.Equal(t, 1, p.SessionsList().Children())
	assert.True(t, SessionRow(p, "b").HasClass("active"))
	assert.False(t, SessionRow(p, "a").Exists())
}
