package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/svcmaker/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting
type DiagnosticReporter struct {
	out     io.Writer
	verbose bool
	colors  bool
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to out
func NewDiagnosticReporter(out io.Writer, verbose, colors bool) *DiagnosticReporter {
	return &DiagnosticReporter{out: out, verbose: verbose, colors: colors}
}

// ReportError prints err with its code, location, context and suggestions
func (r *DiagnosticReporter) ReportError(err error) {
	red := color.New(color.FgRed, color.Bold)
	if r.colors {
		red.EnableColor()
	} else {
		red.DisableColor()
	}

	var makerErr errors.MakerError
	if !stderrors.As(err, &makerErr) {
		red.Fprint(r.out, "ERROR: ")
		fmt.Fprintf(r.out, "%s\n", err.Error())
		return
	}

	red.Fprintf(r.out, "ERROR [%s]: ", makerErr.ErrorCode())
	fmt.Fprintf(r.out, "%s\n", err.Error())

	if r.verbose {
		r.printContext(makerErr.Context())
		r.printChain(err)
	}
	r.printSuggestions(makerErr.Suggestions())
}

// printContext prints context information in a stable order
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	if len(context) == 0 {
		return
	}

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(r.out, "Context:\n")
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}
}

// printChain prints every wrapped cause
func (r *DiagnosticReporter) printChain(err error) {
	cause := stderrors.Unwrap(err)
	if cause == nil {
		return
	}

	fmt.Fprintf(r.out, "Error Chain:\n")
	for level := 1; cause != nil; level++ {
		fmt.Fprintf(r.out, "   %d. %s\n", level, cause.Error())
		cause = stderrors.Unwrap(cause)
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	if len(suggestions) == 0 {
		return
	}

	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, suggestion)
	}
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}
