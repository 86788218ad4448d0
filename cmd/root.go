package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"limeade/pkg/client"
	"limeade/pkg/config"
	"limeade/pkg/errors"
	"limeade/pkg/logger"

	"github.com/spf13/cobra"
)

const (
	unknownValue = "unknown"
)

var (
	Version   string
	BuildTime string
	GitCommit string
)

var serverTarget string

// activeConfig is loaded once per invocation by the root pre-run hook.
var activeConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "limeade",
	Short: "Remote clipboard over HTTP",
	Long: `limeade copies and pastes to the clipboard of another machine.
Run 'limeade server' on the machine that owns the clipboard, then use
'limeade copy' and 'limeade paste' from anywhere that can reach it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Runnable so the pre-run legacy check also covers a bare invocation.
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Unsupported legacy flags fail before anything else happens.
		if err := legacy.validate(); err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		activeConfig = cfg

		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logger.LegacyLevel(legacy.logLevel)
		}
		if _, ok := logger.ParseLevel(level); !ok {
			logger.Warn().Str("level", level).Msg("unknown log level, using info")
		}
		logger.SetLevel(level)

		legacy.logIgnored(cmd.Flags())
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		ver := Version
		if ver == "" {
			ver = "dev"
		}
		bt := BuildTime
		if bt == "" {
			bt = unknownValue
		}
		gc := GitCommit
		if gc == "" {
			gc = unknownValue
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "limeade version %s\n", ver)
		fmt.Fprintf(out, "Built: %s\n", bt)
		fmt.Fprintf(out, "Git commit: %s\n", gc)
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		exitCode := errors.HandleReturn(err)
		os.Exit(int(exitCode))
	}
}

// newClient builds a client for the target resolved from --server, the
// legacy --host/--port pair and the loaded configuration.
func newClient(cmd *cobra.Command) (*client.Client, error) {
	target := activeConfig.Client.Target
	if cmd.Flags().Changed("server") {
		target = serverTarget
	}
	target = legacy.clientTarget(cmd.Flags(), target)

	c, err := client.New(target, client.WithUserAgent(userAgent()))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrMsgClientCreation)
	}
	logger.Debug().Str("endpoint", c.Endpoint().String()).Msg("using server")
	return c, nil
}

func userAgent() string {
	if Version == "" {
		return client.DefaultUserAgent
	}
	return "limeade/" + Version
}

func init() {
	RegisterCommands(rootCmd)

	rootCmd.PersistentFlags().StringVar(&serverTarget, "server", client.DefaultTarget, "The server to connect to for client commands")
	legacy.register(rootCmd.PersistentFlags())
}
