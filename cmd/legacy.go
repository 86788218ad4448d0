package cmd

import (
	"fmt"

	"limeade/pkg/errors"
	"limeade/pkg/logger"
	"limeade/pkg/transport"

	"github.com/spf13/pflag"
)

// legacyFlags are accepted for compatibility with lemonade invocations.
// They are global and hidden from help.
type legacyFlags struct {
	port               int
	host               string
	allow              []string
	lineEnding         bool
	noFallbackMessages bool
	transLoopback      bool
	transLocalfile     bool
	logLevel           int
}

var legacy legacyFlags

var legacyFlagNames = []string{
	"port", "host", "allow", "line-ending", "no-fallback-messages",
	"trans-loopback", "trans-localfile", "log-level",
}

func (l *legacyFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&l.port, "port", 0, "TCP port number")
	fs.StringVar(&l.host, "host", "", "Destination hostname (client only)")
	fs.StringSliceVar(&l.allow, "allow", nil, "Allowed IP range (server only)")
	fs.BoolVar(&l.lineEnding, "line-ending", false, "Convert line endings (CR/CRLF)")
	fs.BoolVar(&l.noFallbackMessages, "no-fallback-messages", false, "Do not show fallback messages (client only)")
	fs.BoolVar(&l.transLoopback, "trans-loopback", false, "Translate loopback address (open command only)")
	fs.BoolVar(&l.transLocalfile, "trans-localfile", false, "Translate local file path (open command only)")
	fs.IntVar(&l.logLevel, "log-level", 1, "Log level (4 = critical, 0 = debug)")

	for _, name := range legacyFlagNames {
		_ = fs.MarkHidden(name)
	}
}

// validate rejects the flags that have no equivalent in limeade.
func (l *legacyFlags) validate() error {
	if l.transLoopback {
		return errors.UnsupportedOptionError("trans-loopback")
	}
	if l.transLocalfile {
		return errors.UnsupportedOptionError("trans-localfile")
	}
	return nil
}

// clientTarget rebuilds the server target from --host/--port when either
// was given; otherwise target is returned unchanged.
func (l *legacyFlags) clientTarget(fs *pflag.FlagSet, target string) string {
	hostSet, portSet := fs.Changed("host"), fs.Changed("port")
	if !hostSet && !portSet {
		return target
	}

	host := "localhost"
	if hostSet {
		host = l.host
	}
	port := transport.DefaultPort
	if portSet {
		port = fmt.Sprint(l.port)
	}
	return fmt.Sprintf("http://%s:%s", host, port)
}

// serverAddr overrides the listen address with :<port> when --port was given.
func (l *legacyFlags) serverAddr(fs *pflag.FlagSet, addr string) string {
	if !fs.Changed("port") {
		return addr
	}
	addr = fmt.Sprintf(":%d", l.port)
	logger.Warn().Str("addr", addr).Msg("legacy --port used, overriding addr")
	return addr
}

func (l *legacyFlags) logIgnored(fs *pflag.FlagSet) {
	for _, name := range []string{"allow", "line-ending", "no-fallback-messages"} {
		if fs.Changed(name) {
			logger.Debug().Str("flag", name).Msg("ignoring legacy flag")
		}
	}
}
