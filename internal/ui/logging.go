package ui

import (
	"io"
	"os"

	"github.com/pterm/pterm"
)

var exitFunc = os.Exit

func SetDebugEnabled(enabled bool) {
	pterm.PrintDebugMessages = enabled
}

// SetOutput redirects all log output, e.g. while a full screen display is shown
func SetOutput(w io.Writer) {
	pterm.SetDefaultOutput(w)
}

func Printf(format string, a ...interface{}) {
	pterm.Printf(format, a...)
}

func Printfln(format string, a ...interface{}) {
	pterm.Printfln(format, a...)
}

func Debug(format string, a ...interface{}) {
	pterm.Debug.Printfln(format, a...)
}

func Info(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

func Success(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

func Warning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

func Error(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

func Fatal(format string, a ...interface{}) {
	pterm.Fatal.Printfln(format, a...)
}

// FatalWithoutStacktrace prints the error and exits, without printing
// the call site like pterm.Fatal does.
func FatalWithoutStacktrace(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
	exitFunc(1)
}
