package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default between runs of the shared
// root command.
func resetFlags(cmd *cobra.Command) {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(cmd.PersistentFlags())
	reset(cmd.Flags())
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := GetRootCmd()
	resetFlags(cmd)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

type fakeSession struct {
	ID       string
	Bot      string
	Messages []map[string]any
	Last     time.Time
}

// chatServer is an in-memory chat server.
type chatServer struct {
	mu       sync.Mutex
	next     int
	sessions map[string]*fakeSession
	order    []string
	failNew  bool
}

func newChatServer(t *testing.T) (*chatServer, *httptest.Server) {
	t.Helper()
	cs := &chatServer{sessions: make(map[string]*fakeSession)}
	srv := httptest.NewServer(cs)
	t.Cleanup(srv.Close)
	return cs, srv
}

// seed adds a session with one answered question.
func (cs *chatServer) seed(bot, question, answer string, last time.Time) string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.next++
	id := fmt.Sprintf("sess-%d", cs.next)
	cs.sessions[id] = &fakeSession{
		ID:  id,
		Bot: bot,
		Messages: []map[string]any{{
			"session_id": id, "role": "user", "message": question, "response": answer,
			"bot_name": bot, "timestamp": last.UTC().Format(time.RFC3339),
		}},
		Last: last,
	}
	cs.order = append([]string{id}, cs.order...)
	return id
}

func (cs *chatServer) reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (cs *chatServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	path := r.URL.Path
	switch {
	case path == "/api/session/new" && r.Method == http.MethodPost:
		if cs.failNew {
			cs.reply(w, http.StatusInternalServerError, map[string]any{"error": "database unavailable"})
			return
		}
		var body struct {
			Bot string `json:"bot"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		cs.next++
		id := fmt.Sprintf("sess-%d", cs.next)
		cs.sessions[id] = &fakeSession{ID: id, Bot: body.Bot, Messages: []map[string]any{}, Last: time.Now()}
		cs.order = append([]string{id}, cs.order...)
		cs.reply(w, http.StatusOK, map[string]any{"session_id": id})

	case path == "/api/session/list":
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		list := []map[string]any{}
		for _, id := range cs.order {
			if limit > 0 && len(list) == limit {
				break
			}
			s := cs.sessions[id]
			var query any
			if len(s.Messages) > 0 {
				query = s.Messages[len(s.Messages)-1]["message"]
			}
			list = append(list, map[string]any{
				"session_id": s.ID, "bot_name": s.Bot, "last_user_query": query,
				"message_count": len(s.Messages) * 2, "status": "active",
				"last_activity": map[string]any{"$date": s.Last.UTC().Format(time.RFC3339)},
			})
		}
		cs.reply(w, http.StatusOK, map[string]any{"sessions": list})

	case strings.HasPrefix(path, "/api/session/history/"):
		s, ok := cs.sessions[strings.TrimPrefix(path, "/api/session/history/")]
		if !ok {
			cs.reply(w, http.StatusNotFound, map[string]any{"error": "session not found"})
			return
		}
		cs.reply(w, http.StatusOK, map[string]any{"history": s.Messages})

	case strings.HasSuffix(path, "/stats"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/api/session/"), "/stats")
		s, ok := cs.sessions[id]
		if !ok {
			cs.reply(w, http.StatusNotFound, map[string]any{"error": "session not found"})
			return
		}
		n := len(s.Messages)
		cs.reply(w, http.StatusOK, map[string]any{
			"session_id": s.ID, "bot_name": s.Bot, "status": "active",
			"total_messages": n * 2, "user_messages": n, "assistant_messages": n,
			"created_at": s.Last.UTC().Format(time.RFC3339), "last_activity": s.Last.UTC().Format(time.RFC3339),
		})

	case strings.HasSuffix(path, "/delete") && r.Method == http.MethodDelete:
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/api/session/"), "/delete")
		if _, ok := cs.sessions[id]; !ok {
			cs.reply(w, http.StatusNotFound, map[string]any{"error": "session not found"})
			return
		}
		delete(cs.sessions, id)
		kept := cs.order[:0]
		for _, o := range cs.order {
			if o != id {
				kept = append(kept, o)
			}
		}
		cs.order = kept
		cs.reply(w, http.StatusOK, map[string]any{"success": true})

	case path == "/api/search":
		q := strings.ToLower(r.URL.Query().Get("q"))
		only := r.URL.Query().Get("session_id")
		results := []map[string]any{}
		for _, id := range cs.order {
			if only != "" && id != only {
				continue
			}
			for _, m := range cs.sessions[id].Messages {
				if strings.Contains(strings.ToLower(m["message"].(string)), q) {
					results = append(results, m)
				}
			}
		}
		cs.reply(w, http.StatusOK, map[string]any{"results": results})

	default:
		cs.reply(w, http.StatusNotFound, map[string]any{"error": "not found"})
	}
}

// writeTestConfig writes a config using a file store under a temp dir and
// returns its path and the data dir.
func writeTestConfig(t *testing.T, extra map[string]any) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := map[string]any{
		"data_dir": dir,
		"logging":  map[string]any{"level": "error", "redaction": true},
		"storage":  map[string]any{"driver": "file"},
	}
	for k, v := range extra {
		cfg[k] = v
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	path := filepath.Join(dir, "articuno.json")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path, dir
}
