package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// debugEnabled gates DebugLog. Set once from config at startup.
var debugEnabled bool

// DebugLog logs a debug message if debug mode is enabled
func DebugLog(context, format string, args ...any) {
	if !debugEnabled {
		return
	}
	log.Printf("[DEBUG] ["+context+"] "+format, args...)
}

func logError(context string, err error) {
	log.Printf("ERROR [%s]: %v", context, err)
}

var (
	separatorWide   = strings.Repeat("=", 80)
	separatorPhase  = strings.Repeat("=", 60)
	separatorNarrow = strings.Repeat("-", 60)
)

// GameLogger writes every transcript line to the console, a per-run file, and
// any extra sinks (the spectator hub).
type GameLogger struct {
	mu   sync.Mutex
	path string
	file *os.File
	out  io.Writer
}

// NewGameLogger creates <dir>/<prefix>_<YYYYmmddHHMMSS>.md and writes its header.
// The directory is created if missing.
func NewGameLogger(dir, prefix, title string, console io.Writer, extra ...io.Writer) (*GameLogger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	stamp := time.Now().Format("20060102150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.md", prefix, stamp))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open game log: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%s ログ - %s\n%s\n\n", title, stamp, separatorWide); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write game log header: %w", err)
	}

	sinks := append([]io.Writer{console, f}, extra...)
	gl := &GameLogger{path: path, file: f, out: io.MultiWriter(sinks...)}
	fmt.Fprintf(console, "📝 ログファイル作成: %s\n", path)
	return gl, nil
}

// Path is the transcript file location.
func (gl *GameLogger) Path() string {
	return gl.path
}

// Println writes one line to every sink.
func (gl *GameLogger) Println(line string) {
	gl.mu.Lock()
	defer gl.mu.Unlock()
	if _, err := io.WriteString(gl.out, line+"\n"); err != nil {
		logError("GameLogger.Println", err)
	}
}

func (gl *GameLogger) Printf(format string, args ...any) {
	gl.Println(fmt.Sprintf(format, args...))
}

// LogPhase frames a phase heading, with the day appended when day > 0.
func (gl *GameLogger) LogPhase(name string, day int) {
	if day > 0 {
		gl.Printf("\n%s\n%s - %d日目\n%s", separatorPhase, name, day, separatorPhase)
		return
	}
	gl.Printf("\n%s\n%s\n%s", separatorPhase, name, separatorPhase)
}

// Close closes the transcript file
func (gl *GameLogger) Close() error {
	gl.mu.Lock()
	defer gl.mu.Unlock()
	return gl.file.Close()
}
