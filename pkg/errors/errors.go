package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"limeade/pkg/logger"

	"github.com/fatih/color"
)

type ExitCode int

const (
	ExitCodeSuccess           ExitCode = 0
	ExitCodeGeneral           ExitCode = 1
	ExitCodeConfig            ExitCode = 2
	ExitCodeAddress           ExitCode = 3
	ExitCodeTransport         ExitCode = 4
	ExitCodeBusy              ExitCode = 5
	ExitCodeAccess            ExitCode = 6
	ExitCodeUnsupportedOption ExitCode = 7
	ExitCodeCancellation      ExitCode = 8
)

// Standardized error messages for consistent user-facing errors
const (
	ErrMsgCopyFailed      = "Failed to copy to clipboard"
	ErrMsgCopyStdinFailed = "Failed to copy from stdin to clipboard"
	ErrMsgPasteFailed     = "Failed to get clipboard content"
	ErrMsgStreamFailed    = "Failed to read from clipboard stream"
	ErrMsgStdoutFailed    = "Failed to write to stdout"
	ErrMsgClientCreation  = "Failed to create client"
	ErrMsgServerFailed    = "Server failed"
)

type Error struct {
	Code       ExitCode
	Message    string
	Underlying error
	Suggestion string
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

func NewWithError(code ExitCode, message string, err error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Underlying: err,
	}
}

// Wrap prefixes err with message. The exit code and suggestion of a wrapped
// *Error are preserved.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	if wrapped, ok := err.(*Error); ok {
		return &Error{
			Code:       wrapped.Code,
			Message:    message + ": " + wrapped.Message,
			Underlying: wrapped.Underlying,
			Suggestion: wrapped.Suggestion,
		}
	}

	return &Error{
		Code:       ExitCodeGeneral,
		Message:    message,
		Underlying: err,
	}
}

// CodeOf returns the exit code carried by err, or ExitCodeGeneral when err
// is not an *Error.
func CodeOf(err error) ExitCode {
	if err == nil {
		return ExitCodeSuccess
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ExitCodeGeneral
}

func IsExitCode(err error, code ExitCode) bool {
	if err == nil {
		return false
	}

	if e, ok := err.(*Error); ok {
		return e.Code == code
	}

	return false
}

// HandleReturn processes an error and returns the appropriate exit code.
// It does not call os.Exit; the caller is responsible for exiting the program.
func HandleReturn(err error) ExitCode {
	return render(os.Stderr, err)
}

func render(w io.Writer, err error) ExitCode {
	if err == nil {
		return ExitCodeSuccess
	}

	var exitCode ExitCode = ExitCodeGeneral
	var message string
	var suggestion string

	if e, ok := err.(*Error); ok {
		exitCode = e.Code
		message = e.Error()
		suggestion = e.Suggestion

		if e.Underlying != nil {
			logger.Debug().Err(e.Underlying).Int("exit_code", int(exitCode)).Msg(e.Message)
		}
	} else {
		message = err.Error()
	}

	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, message)

	if suggestion != "" {
		yellow.Fprint(w, "Suggestion: ")
		lines := strings.Split(suggestion, "\n")
		for i, line := range lines {
			if i == 0 {
				fmt.Fprintln(w, line)
			} else {
				if strings.HasPrefix(line, "  -") {
					cyan.Fprintln(w, line)
				} else {
					fmt.Fprintln(w, "            "+line)
				}
			}
		}
	}

	return exitCode
}

func ConfigError(message string) *Error {
	return &Error{
		Code:       ExitCodeConfig,
		Message:    message,
		Suggestion: "Check your configuration file (~/.config/limeade/config.yaml) or the LIMEADE_* environment variables.",
	}
}

// AddressError reports a server address that is not a well-formed network
// address. It is raised before any network activity.
func AddressError(addr string, err error) *Error {
	return &Error{
		Code:       ExitCodeAddress,
		Message:    fmt.Sprintf("invalid addr: %q", addr),
		Underlying: err,
		Suggestion: "Use host:port or a full URL such as http://host:2490.",
	}
}

// TransportError reports a failure establishing or maintaining the HTTP
// connection, including timeouts.
func TransportError(err error) *Error {
	return &Error{
		Code:       ExitCodeTransport,
		Message:    "transport error",
		Underlying: err,
		Suggestion: "Check that 'limeade server' is running and reachable.",
	}
}

// BusyError reports that the clipboard is held by another local actor.
func BusyError(err error) *Error {
	return &Error{
		Code:       ExitCodeBusy,
		Message:    "clipboard is busy",
		Underlying: err,
		Suggestion: "Another application is holding the clipboard. Try again.",
	}
}

// AccessError reports a non-busy clipboard failure, such as a missing
// display session.
func AccessError(err error) *Error {
	return &Error{
		Code:       ExitCodeAccess,
		Message:    "failed to access clipboard",
		Underlying: err,
	}
}

// CancelledError reports an operation abandoned by its caller, for example
// on Ctrl-C.
func CancelledError(operation string, err error) *Error {
	return &Error{
		Code:       ExitCodeCancellation,
		Message:    "operation cancelled: " + operation,
		Underlying: err,
	}
}

// UnsupportedOptionError reports a legacy flag with no safe equivalent.
func UnsupportedOptionError(flag string) *Error {
	return &Error{
		Code:    ExitCodeUnsupportedOption,
		Message: fmt.Sprintf("legacy flag --%s is not supported in limeade", flag),
	}
}

