package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/minisys/masm/assembler"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorYellow  = "\x1b[33m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
)

// reportError prints every collected diagnostic to stderr, colored by
// kind when stderr is a terminal.
func reportError(err error) {
	colored := term.IsTerminal(int(os.Stderr.Fd()))

	var list assembler.ErrorList
	if !errors.As(err, &list) {
		var single *assembler.Error
		if errors.As(err, &single) {
			list = assembler.ErrorList{single}
		}
	}
	if len(list) == 0 {
		fmt.Fprintln(os.Stderr, "masm:", err)
		return
	}
	for _, e := range list {
		fmt.Fprintln(os.Stderr, renderDiagnostic(e, colored))
	}
	if len(list) > 1 {
		fmt.Fprintf(os.Stderr, "%d errors\n", len(list))
	}
}

// renderDiagnostic formats one diagnostic, echoing the offending
// source line underneath when there is one.
func renderDiagnostic(e *assembler.Error, colored bool) string {
	text := e.Error()
	if colored {
		text = kindColor(e.Kind) + text + colorReset
	}
	if src := strings.TrimSpace(e.Source); src != "" {
		text += "\n\t" + src
	}
	return text
}

func kindColor(k assembler.Kind) string {
	switch k {
	case assembler.Syntax:
		return colorRed
	case assembler.Semantic:
		return colorYellow
	case assembler.Linking:
		return colorMagenta
	}
	return colorCyan
}
