package session

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harun/articuno/internal/tracing"
	"github.com/harun/articuno/pkg/sessionapi"
	"go.opentelemetry.io/otel/attribute"
)

const archiveExt = ".jsonl"

// ArchiveEntry is one line of a session archive.
type ArchiveEntry struct {
	SessionID string             `json:"sessionId"`
	Message   sessionapi.Message `json:"message"`
}

// Archiver saves session history to local JSONL files, one per session.
type Archiver struct {
	manager *Manager
	dir     string
}

// NewArchiver creates an archiver writing into dir.
func NewArchiver(manager *Manager, dir string) (*Archiver, error) {
	if dir == "" {
		return nil, fmt.Errorf("archive directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &Archiver{manager: manager, dir: dir}, nil
}

// Dir returns the archive directory.
func (a *Archiver) Dir() string {
	return a.dir
}

// validateSessionID rejects ids that are not safe as file names.
func validateSessionID(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session id cannot be empty")
	}
	if strings.Contains(sessionID, "..") {
		return fmt.Errorf("session id cannot contain '..'")
	}
	if strings.ContainsAny(sessionID, "/\\") {
		return fmt.Errorf("session id cannot contain path separators")
	}
	if strings.Contains(sessionID, "\x00") {
		return fmt.Errorf("session id cannot contain null bytes")
	}
	return nil
}

func (a *Archiver) path(sessionID string) string {
	return filepath.Join(a.dir, sessionID+archiveExt)
}

// Archive fetches up to limit messages of a session (limit <= 0 means the
// history default) and writes them to <dir>/<id>.jsonl, replacing an
// earlier archive. It returns the file path and the number of messages.
func (a *Archiver) Archive(ctx context.Context, sessionID string, limit int) (string, int, error) {
	ctx = tracing.WithSessionID(ctx, sessionID)
	ctx, span := tracing.StartSpan(ctx, tracerName, "session.archive", attribute.String("session_id", sessionID))
	defer span.End()
	logger := tracing.LoggerFromContext(ctx, a.manager.logger)

	if err := validateSessionID(sessionID); err != nil {
		tracing.FailSpan(span, err)
		return "", 0, err
	}
	if limit <= 0 {
		limit = a.manager.historyLimit
	}

	history, err := a.manager.api.History(ctx, sessionID, limit)
	if err != nil {
		tracing.FailSpan(span, err)
		return "", 0, fmt.Errorf("failed to load history: %w", err)
	}

	path := a.path(sessionID)
	tmp, err := os.CreateTemp(a.dir, "."+sessionID+"-*.tmp")
	if err != nil {
		tracing.FailSpan(span, err)
		return "", 0, fmt.Errorf("failed to create archive file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for _, msg := range history {
		if err := enc.Encode(ArchiveEntry{SessionID: sessionID, Message: msg}); err != nil {
			tmp.Close()
			tracing.FailSpan(span, err)
			return "", 0, fmt.Errorf("failed to encode message: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return "", 0, fmt.Errorf("failed to write archive: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return "", 0, fmt.Errorf("failed to set archive permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to close archive: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		tracing.FailSpan(span, err)
		return "", 0, fmt.Errorf("failed to move archive into place: %w", err)
	}

	logger.Info().Str("path", path).Int("messages", len(history)).Msg("Session archived")
	return path, len(history), nil
}

// Load reads an archived session. Malformed lines are skipped.
func (a *Archiver) Load(sessionID string) ([]sessionapi.Message, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	file, err := os.Open(a.path(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	var messages []sessionapi.Message
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry ArchiveEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			a.manager.logger.Warn().
				Str("session_id", sessionID).
				Int("line", lineNum).
				Err(err).
				Msg("Skipping corrupted archive line")
			continue
		}
		messages = append(messages, entry.Message)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	return messages, nil
}

// List returns the archived session ids, sorted.
func (a *Archiver) List() ([]string, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, archiveExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, archiveExt))
	}
	sort.Strings(ids)
	return ids, nil
}
