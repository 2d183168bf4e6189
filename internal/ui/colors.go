// Package ui provides terminal UI helpers for senget.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan)
	Header  = color.New(color.FgMagenta, color.Bold)
	Muted   = color.New(color.FgHiBlack)
)

// Out is where messages and tables are written.
var Out io.Writer = os.Stdout

// UseColors represents whether colors should be used.
var UseColors = true

// Symbols for status indicators
var (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "!"
	SymbolInfo    = "→"
)

// Init initializes the UI settings.
func Init(useColors bool) {
	UseColors = useColors && os.Getenv("NO_COLOR") == ""
	color.NoColor = !UseColors
}

// SuccessMsg prints a success message.
func SuccessMsg(format string, args ...interface{}) {
	_, _ = Success.Fprintf(Out, SymbolSuccess+" "+format+"\n", args...)
}

// ErrorMsg prints an error message.
func ErrorMsg(format string, args ...interface{}) {
	_, _ = Error.Fprintf(Out, SymbolError+" "+format+"\n", args...)
}

// WarningMsg prints a warning message.
func WarningMsg(format string, args ...interface{}) {
	_, _ = Warning.Fprintf(Out, SymbolWarning+" "+format+"\n", args...)
}

// InfoMsg prints an info message.
func InfoMsg(format string, args ...interface{}) {
	_, _ = Info.Fprintf(Out, SymbolInfo+" "+format+"\n", args...)
}

// HeaderMsg prints a header message.
func HeaderMsg(format string, args ...interface{}) {
	_, _ = Header.Fprintf(Out, "\n"+format+"\n", args...)
}

// MutedMsg prints a muted (dim) message.
func MutedMsg(format string, args ...interface{}) {
	_, _ = Muted.Fprintf(Out, format+"\n", args...)
}

// Println prints a plain line.
func Println(a ...interface{}) {
	_, _ = fmt.Fprintln(Out, a...)
}

// Bold returns a bold string.
func Bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}
