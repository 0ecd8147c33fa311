package logger

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewRotatingWriter returns a file writer that rotates at maxSizeMB and
// prunes rotated files older than maxAge days.
func NewRotatingWriter(filename string, maxSizeMB int, maxAge int, compress bool) io.WriteCloser {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &lumberjack.Logger{
		Filename: filename,
		MaxSize:  maxSizeMB,
		MaxAge:   maxAge,
		Compress: compress,
	}
}
