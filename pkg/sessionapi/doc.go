// Package sessionapi is a typed client for the chat server's session
// endpoints.
//
// Every call returns (value, error). Two error kinds are distinguished:
// transport failures (errors.Is(err, ErrTransport)) and errors reported by
// the server in an {"error": ...} body (errors.Is(err, ErrAPI)). Malformed
// bodies yield ErrDecode. Nothing is retried.
//
// Usage:
//
//	c, _ := sessionapi.New("http://127.0.0.1:5000")
//	id, err := c.CreateSession(ctx, "GPT-4o")
//	history, err := c.History(ctx, id, 50)
package sessionapi
