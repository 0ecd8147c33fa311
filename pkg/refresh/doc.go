// Package refresh triggers re-renders of client views: on a cron schedule
// and when the file-backed client state changes on disk.
package refresh
