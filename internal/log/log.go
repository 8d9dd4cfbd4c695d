// Package log provides the lazyselect debug log and the diagnostic channel.
//
// Messages written before SetFile is called are buffered, so early startup
// output is not lost once the log file is known. Calling SetFile("") drops
// the buffer and discards everything afterwards.
package log

import (
	"fmt"
	"log"
	"os"
	"slices"
	"sync"
)

// maxRecent bounds the number of diagnostics kept for Recent.
const maxRecent = 32

// sink is the io.Writer behind the package logger.
type sink struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
	recent  []string
}

var (
	global    = &sink{}
	stdLogger = log.New(global, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer. It writes to the file if one is set and
// buffers otherwise.
func (l *sink) Write(p []byte) (n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.discard {
		return len(p), nil
	}

	if l.file != nil {
		n, err = l.file.Write(p)
		_ = l.file.Sync()
		return n, err
	}

	// p may be reused by the caller
	b := make([]byte, len(p))
	copy(b, p)
	l.buffer = append(l.buffer, b...)
	return len(p), nil
}

func (l *sink) remember(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// a repeated diagnostic moves to the end instead of being kept twice
	if i := slices.Index(l.recent, msg); i >= 0 {
		l.recent = slices.Delete(l.recent, i, i+1)
	}
	l.recent = append(l.recent, msg)
	if len(l.recent) > maxRecent {
		l.recent = l.recent[len(l.recent)-maxRecent:]
	}
}

// SetFile sets the debug log file path, creating the file if needed and
// flushing anything buffered so far. An empty path discards all logs.
func SetFile(path string) error {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.file != nil {
		_ = global.file.Close()
		global.file = nil
	}

	if path == "" {
		global.discard = true
		global.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		global.discard = true
		global.buffer = nil
		return err
	}

	global.file = f
	global.discard = false

	if len(global.buffer) > 0 {
		_, _ = f.Write(global.buffer)
		_ = f.Sync()
		global.buffer = nil
	}

	return nil
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Println writes a debug message.
func Println(v ...any) {
	stdLogger.Println(v...)
}

// Warnf reports a non-fatal diagnostic. It is logged like any other message
// and also kept in memory for Recent, even when the log is discarded.
func Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	global.remember(msg)
	stdLogger.Printf("warn: %s", msg)
}

// Recent returns the latest distinct diagnostics, oldest first.
func Recent() []string {
	global.mu.Lock()
	defer global.mu.Unlock()

	return append([]string(nil), global.recent...)
}

// Close closes the debug log file if open.
func Close() error {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.file == nil {
		return nil
	}

	err := global.file.Close()
	global.file = nil
	return err
}
