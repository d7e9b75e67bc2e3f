package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/roach88/meteor/internal/engine"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Validation failure (bad stream, failed parse)
	ExitCommandError = 2 // Command error (bad flags, missing files)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// StoreView is the JSON shape of a rendered store listing.
type StoreView struct {
	Cursor  string      `json:"cursor"`
	Entries []EntryView `json:"entries"`
}

// EntryView is one listed key in full-path form.
type EntryView struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

// buildStoreView flattens the engine store in deterministic order.
func buildStoreView(eng *engine.Engine) StoreView {
	cur := eng.Cursor()
	view := StoreView{Cursor: cur.Context.Name() + ":" + cur.Namespace.String()}
	for _, ctx := range eng.Contexts() {
		for _, ns := range eng.Namespaces(ctx) {
			for _, entry := range eng.Entries(ctx, ns) {
				view.Entries = append(view.Entries, EntryView{
					Path:  ctx + ":" + ns + ":" + entry.Key,
					Value: entry.Value,
				})
			}
		}
	}
	return view
}

// renderStore writes the listing as text or JSON.
func renderStore(w io.Writer, format string, view StoreView) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	fmt.Fprintf(w, "cursor: %s\n", view.Cursor)
	for _, e := range view.Entries {
		fmt.Fprintf(w, "%s = %s\n", e.Path, e.Value)
	}
	return nil
}

// renderHistory writes the audit trail. Timestamps are elided in text form;
// the trail is ordered, which is what a reader scans for.
func renderHistory(w io.Writer, format string, records []engine.Record) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	for _, r := range records {
		status := "ok"
		if !r.Success {
			status = "failed: " + r.Error
		}
		fmt.Fprintf(w, "%s %s -> %s\n", r.Command, r.Target, status)
	}
	return nil
}
