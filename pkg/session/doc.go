// Package session is the chat client's session manager.
//
// A Manager creates, lists, searches and deletes server-side chat sessions
// through the session API, remembers the current session and bot in a
// state.State, and renders history and the session sidebar into a ui.Page.
//
// Invariants:
// - Operations never return errors. Failures are logged and a safe value
// ("", nil slice, zero Stats, false, 0) is returned.
// - The current session changes only after the server confirmed the change.
// - Deleting the current session clears the stored id but keeps the bot.
//
// Usage:
//
//	client, _ := sessionapi.New("http://127.0.0.1:5000")
//	store, _ := state.NewStore(state.StoreTypeFile, state.WithPath(path))
//	mgr := session.New(client, state.New(store))
//	id := mgr.CreateSession(ctx, "GPT-4o")
//	_ = mgr.LoadSessionHistory(ctx, id, 0)
package session
