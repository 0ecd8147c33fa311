package session

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/harun/articuno/pkg/sessionapi"
	"github.com/harun/articuno/pkg/state"
	"github.com/harun/articuno/pkg/ui"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer serves the session endpoints from canned JSON.
func fakeServer(t *testing.T, failCreate bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/session/new", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Bot string `json:"bot"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if failCreate {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error": "database unavailable"}`)
			return
		}
		_, _ = io.WriteString(w, `{"session_id": "srv-1"}`)
	})
	mux.HandleFunc("/api/session/list", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"sessions": [
			{"session_id": "srv-1", "bot_name": "GPT-4o", "last_user_query": "hello there",
			 "message_count": 2, "last_activity": {"$date": "2025-01-01T00:00:00Z"}, "status": "active"}
		]}`)
	})
	mux.HandleFunc("/api/session/history/srv-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `{"history": [
			{"role": "user", "message": "hello there", "response": "general kenobi",
			 "timestamp": "2025-01-01T00:00:00Z"}
		]}`)
	})
	mux.HandleFunc("/api/session/srv-1/delete", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		_, _ = io.WriteString(w, `{"success": true}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupIntegration(t *testing.T, failCreate bool) (*Manager, state.Store) {
	t.Helper()
	srv := fakeServer(t, failCreate)
	client, err := sessionapi.New(srv.URL, sessionapi.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	store, err := state.NewStore(state.StoreTypeFile, state.WithPath(filepath.Join(t.TempDir(), "local_storage.json")))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return New(client, state.New(store), WithLogger(zerolog.Nop()), WithConfirmer(AlwaysConfirm)), store
}

func TestManager_AgainstServer(t *testing.T) {
	ctx := context.Background()

	t.Run("create select delete", func(t *testing.T) {
		mgr, store := setupIntegration(t, false)

		id := mgr.CreateSession(ctx, "GPT-4o")
		require.Equal(t, "srv-1", id)

		page := ui.NewPage()
		sb := mgr.RenderSessionsList(ctx, page, page.SessionsList())
		require.Equal(t, []string{"srv-1"}, sb.SessionIDs())
		assert.Equal(t, "srv-1", ui.ActiveSessionID(page))

		require.True(t, sb.Click(ctx, "srv-1"))
		assert.Contains(t, page.ChatHistory().Text(), "general kenobi")

		assert.True(t, mgr.DeleteSession(ctx, "srv-1"))
		_, ok, err := store.Get(ctx, state.KeyCurrentSessionID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("server error leaves storage untouched", func(t *testing.T) {
		mgr, store := setupIntegration(t, true)

		assert.Empty(t, mgr.CreateSession(ctx, "GPT-4o"))

		_, ok, err := store.Get(ctx, state.KeyCurrentSessionID)
		require.NoError(t, err)
		assert.False(t, ok)
		_, ok, err = store.Get(ctx, state.KeyCurrentBot)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
