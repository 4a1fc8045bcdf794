// Package logging provides colored, leveled log output for the workout-forge
// CLI, optionally mirrored to a rotating log file.
//
// All output functions write a prefixed, color-coded line. Debug output is
// suppressed unless verbose mode is enabled via SetVerbose(true).
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu      sync.Mutex
	verbose bool
	stdout  io.Writer = os.Stdout
	stderr  io.Writer = os.Stderr

	// fileLog mirrors every line, uncolored, when a log file is open.
	fileLog  *log.Logger
	fileSink io.Closer
)

// Color printers for each log level.
var (
	infoPrefix    = color.New(color.FgBlue).SprintFunc()
	successPrefix = color.New(color.FgGreen).SprintFunc()
	warnPrefix    = color.New(color.FgYellow).SprintFunc()
	errorPrefix   = color.New(color.FgRed).SprintFunc()
	phasePrefix   = color.New(color.FgCyan).SprintFunc()
	debugPrefix   = color.New(color.FgBlue).SprintFunc()
)

// SetVerbose enables or disables Debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// SetOutput redirects console output. Nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// OpenFile mirrors all log lines to path, rotating at 10 MB and keeping
// three old files for 28 days.
func OpenFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	if fileSink != nil {
		fileSink.Close()
	}
	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	fileSink = sink
	fileLog = log.New(sink, "", log.LstdFlags)
}

// Close flushes and detaches the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if fileSink == nil {
		return nil
	}
	err := fileSink.Close()
	fileSink, fileLog = nil, nil
	return err
}

func emit(w io.Writer, colored, plain, msg string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(w, colored+" "+msg)
	if fileLog != nil {
		fileLog.Println(plain + " " + msg)
	}
}

// Info prints an informational message to stdout in blue.
func Info(msg string) {
	emit(stdout, infoPrefix("[INFO]"), "[INFO]", msg)
}

// Success prints a success message to stdout in green.
func Success(msg string) {
	emit(stdout, successPrefix("[SUCCESS]"), "[SUCCESS]", msg)
}

// Warn prints a warning message to stdout in yellow.
func Warn(msg string) {
	emit(stdout, warnPrefix("[WARN]"), "[WARN]", msg)
}

// Error prints an error message to stderr in red.
func Error(msg string) {
	emit(stderr, errorPrefix("[ERROR]"), "[ERROR]", msg)
}

// Phase prints a phase header to stdout in cyan, surrounded by separator lines.
func Phase(msg string) {
	sep := "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(stdout, phasePrefix(sep))
	fmt.Fprintln(stdout, phasePrefix("[PHASE]")+" "+msg)
	fmt.Fprintln(stdout, phasePrefix(sep))
	if fileLog != nil {
		fileLog.Println("[PHASE] " + msg)
	}
}

// Debug prints a debug message to stdout in blue, only when verbose mode is
// enabled. The log file always receives debug lines.
func Debug(msg string) {
	mu.Lock()
	v := verbose
	mu.Unlock()
	if v {
		emit(stdout, debugPrefix("[DEBUG]"), "[DEBUG]", msg)
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if fileLog != nil {
		fileLog.Println("[DEBUG] " + msg)
	}
}

// FormatDuration converts a duration in seconds to a human-readable string.
//
// Examples:
//
//	FormatDuration(45)   => "45s"
//	FormatDuration(90)   => "1m 30s"
//	FormatDuration(3661) => "1h 1m 1s"
func FormatDuration(seconds int) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%dh %dm %ds", seconds/3600, (seconds%3600)/60, seconds%60)
}
