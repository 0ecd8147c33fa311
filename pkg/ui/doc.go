// Package ui renders chat sessions into an HTML document tree.
//
// It has no network access: callers pass in already-loaded sessions and
// messages. Text is always inserted as text nodes, never parsed as markup.
package ui
