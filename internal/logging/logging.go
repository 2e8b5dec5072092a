// Package logging provides levelled, coloured output for the CLI.
//
// Info lines are hidden by Quiet, debug lines need Verbose. Warnings and
// errors always go to the error stream.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger writes prefixed messages to Out and Err.
type Logger struct {
	Quiet   bool
	Verbose bool

	Out io.Writer
	Err io.Writer
}

// New returns a logger writing to stdout and stderr.
func New(quiet, verbose bool) Logger {
	return Logger{Quiet: quiet, Verbose: verbose, Out: os.Stdout, Err: os.Stderr}
}

// Discard returns a logger that writes nothing.
func Discard() Logger {
	return Logger{Quiet: true, Out: io.Discard, Err: io.Discard}
}

func (l Logger) Infof(msg string, args ...any) {
	if !l.Quiet {
		l.print(l.out(), color.GreenString("[info] "), msg, args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Verbose {
		l.print(l.out(), color.CyanString("[debug] "), msg, args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	l.print(l.err(), color.YellowString("[warn] "), msg, args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	l.print(l.err(), color.RedString("[error] "), msg, args...)
}

func (l Logger) print(w io.Writer, prefix, msg string, args ...any) {
	fmt.Fprintf(w, prefix+msg+"\n", args...)
}

func (l Logger) out() io.Writer {
	if l.Out == nil {
		return os.Stdout
	}

	return l.Out
}

func (l Logger) err() io.Writer {
	if l.Err == nil {
		return os.Stderr
	}

	return l.Err
}
