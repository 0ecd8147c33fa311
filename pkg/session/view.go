package session

import (
	"context"

	"github.com/harun/articuno/internal/observability"
	"github.com/harun/articuno/internal/tracing"
	"github.com/harun/articuno/pkg/sessionapi"
	"github.com/harun/articuno/pkg/ui"
	"go.opentelemetry.io/otel/attribute"
)

// DisplaySessionHistory renders the history of a session into container,
// replacing its content, and scrolls it to the bottom. It returns the
// number of history entries, 0 when loading failed or container is missing.
func (m *Manager) DisplaySessionHistory(ctx context.Context, sessionID string, container *ui.Element) int {
	history := m.LoadSessionHistory(ctx, sessionID, m.historyLimit)
	n := ui.RenderHistory(container, history)
	observability.RecordHistoryRender(n)
	return n
}

// RenderSessionsList renders the recent sessions into container and returns
// the sidebar. Clicking a row selects the session on page; the delete
// button asks the confirmer, then deletes and re-renders the same sidebar.
func (m *Manager) RenderSessionsList(ctx context.Context, page *ui.Page, container *ui.Element) *ui.Sidebar {
	var sb *ui.Sidebar
	sb = ui.NewSidebar(container, ui.SidebarHandlers{
		Select: func(ctx context.Context, row *ui.Element, s sessionapi.SessionSummary) {
			m.selectRow(ctx, page, row, s)
		},
		Delete: func(ctx context.Context, s sessionapi.SessionSummary) {
			if !m.confirm.Confirm(ctx, ui.DeleteConfirmPrompt) {
				return
			}
			m.DeleteSession(ctx, s.SessionID)
			m.refreshSidebar(ctx, sb)
		},
	})
	m.refreshSidebar(ctx, sb)
	return sb
}

func (m *Manager) refreshSidebar(ctx context.Context, sb *ui.Sidebar) {
	sessions := m.ListSessions(ctx, m.listLimit)
	sb.Render(sessions, m.CurrentSessionID(ctx), m.now())
	observability.RecordSidebarRender(len(sessions))
}

// SelectSession makes s the current session and shows it on page: the
// assistant profile and headers switch to its bot, the chat view replaces
// the landing panels, its history is rendered and its sidebar row is
// highlighted. It returns the number of history entries rendered.
func (m *Manager) SelectSession(ctx context.Context, page *ui.Page, s sessionapi.SessionSummary) int {
	return m.selectRow(ctx, page, ui.SessionRow(page, s.SessionID), s)
}

func (m *Manager) selectRow(ctx context.Context, page *ui.Page, row *ui.Element, s sessionapi.SessionSummary) int {
	ctx = tracing.WithSessionID(tracing.WithBot(ctx, s.BotName), s.SessionID)
	ctx, span := tracing.StartSpan(ctx, tracerName, "session.select",
		attribute.String("session_id", s.SessionID),
		attribute.String("bot", s.BotName),
	)
	defer span.End()
	logger := tracing.LoggerFromContext(ctx, m.logger)

	if err := m.state.Activate(ctx, s.SessionID, s.BotName); err != nil {
		logger.Warn().Err(err).Msg("Selected session not persisted")
	}
	observability.RecordSessionAudit(ctx, "activate", s.SessionID, observability.AuditSuccess, nil)

	avatar := ui.ApplyBot(page, s.BotName)
	ui.ShowChatInterface(page)

	n := 0
	if history := page.ChatHistory(); history.Exists() {
		n = m.DisplaySessionHistory(ctx, s.SessionID, history)
	}
	ui.MarkActive(page, row)

	logger.Debug().Str("avatar", avatar).Int("messages", n).Msg("Session selected")
	return n
}
