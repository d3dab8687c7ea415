// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/keystamp/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 FileOutcome represents the result for one candidate file
type FileOutcome struct {
	Path     string         // File path as shown to the user
	Outcome  status.Outcome // Terminal state
	Key      string         // Inserted key, when annotated
	Source   string         // Table that produced the key
	Pair     string         // provider/contentType pair, when unresolved
	Rewrites int            // Call-site rewrites applied
}

// 🎯 Logger handles user-facing console output and mirrors it to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 detail builds the trailing text of an outcome line
func detail(op FileOutcome) string {
	switch op.Outcome {
	case status.OutcomeAnnotated:
		d := op.Key
		if op.Source != "" {
			d += " (" + op.Source + ")"
		}
		if op.Rewrites > 0 {
			d += fmt.Sprintf(" +%d call site", op.Rewrites)
			if op.Rewrites > 1 {
				d += "s"
			}
		}
		return d
	case status.OutcomeUnresolved:
		return op.Pair
	default:
		return ""
	}
}

// 📝 LogFileOutcome prints one line for a processed file
func (l *Logger) LogFileOutcome(ctx context.Context, op FileOutcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, status.FormatOutcome(op.Path, op.Outcome, detail(op)))

	var ev *zerolog.Event
	switch op.Outcome {
	case status.OutcomeAnnotated:
		ev = l.zlog.Info()
	case status.OutcomeUnresolved:
		ev = l.zlog.Warn()
	default:
		ev = l.zlog.Debug()
	}

	ev = ev.Str("file", op.Path).Str("outcome", op.Outcome.String())
	if op.Key != "" {
		ev = ev.Str("key", op.Key).Str("source", op.Source).Int("rewrites", op.Rewrites)
	}
	if op.Pair != "" {
		ev = ev.Str("pair", op.Pair)
	}
	ev.Msg("file processed")
}

// 🔍 LogReview flags lines a human should look at
func (l *Logger) LogReview(ctx context.Context, path, field string, lines []int) {
	if len(lines) == 0 {
		return
	}

	nums := make([]string, 0, len(lines))
	for _, n := range lines {
		nums = append(nums, strconv.Itoa(n))
	}

	noun := "line"
	if len(lines) > 1 {
		noun = "lines"
	}

	l.Warningf("review %s: %s %s still reference .%s", path, noun, strings.Join(nums, ", "), field)
}

// 📝 LogDiff prints a unified diff
func (l *Logger) LogDiff(diff string) {
	if diff == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprint(l.console, color.New(color.Bold).Sprint(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprint(l.console, color.GreenString("%s", line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprint(l.console, color.RedString("%s", line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprint(l.console, color.CyanString("%s", line))
		default:
			fmt.Fprint(l.console, line)
		}
	}
}

// 📊 Summary prints the final counters
func (l *Logger) Summary(tally *status.Tally) error {
	rows := [][]string{{"outcome", "files"}}
	for _, o := range status.Outcomes {
		rows = append(rows, []string{o.String(), strconv.Itoa(tally.Count(o))})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return errors.Errorf("rendering summary: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "\n📊 Summary:\n")
	fmt.Fprintf(l.console, "   Updated: %s files\n", color.New(color.FgGreen).Sprint(tally.Updated))
	fmt.Fprintf(l.console, "   Skipped: %s files\n\n", color.New(color.FgYellow).Sprint(tally.Skipped))
	fmt.Fprintln(l.console, table)

	l.zlog.Info().
		Int("updated", tally.Updated).
		Int("skipped", tally.Skipped).
		Int("already_annotated", tally.Count(status.OutcomeAlreadyAnnotated)).
		Int("ineligible", tally.Count(status.OutcomeIneligible)).
		Int("unresolved", tally.Count(status.OutcomeUnresolved)).
		Msg("run complete")

	return nil
}

// 📋 Table prints rows as a table, the first row being the header
func (l *Logger) Table(rows [][]string) error {
	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return errors.Errorf("rendering table: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, table)
	return nil
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("keystamp")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 LogNewline prints an empty line
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}
