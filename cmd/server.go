package cmd

import (
	"limeade/pkg/clipboard"
	"limeade/pkg/config"
	"limeade/pkg/errors"
	"limeade/pkg/logger"
	"limeade/pkg/server"

	"github.com/spf13/cobra"
)

var (
	serverAddr    string
	serverBackend string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the local clipboard over HTTP",
	Long: `Start the limeade server. It owns the clipboard of this machine and
accepts copy (POST /clipboard) and paste (GET /clipboard) requests.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := activeConfig.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr = serverAddr
		}
		addr = legacy.serverAddr(cmd.Flags(), addr)

		backend := activeConfig.Server.Backend
		if cmd.Flags().Changed("backend") {
			backend = serverBackend
		}

		res, err := openBackend(backend)
		if err != nil {
			return errors.Wrap(err, errors.ErrMsgServerFailed)
		}

		logger.Info().Str("addr", addr).Str("backend", backend).Msg("starting server")
		if err := server.New(addr, res).Run(cmd.Context()); err != nil {
			return errors.Wrap(err, errors.ErrMsgServerFailed)
		}
		return nil
	},
}

func openBackend(name string) (clipboard.Resource, error) {
	switch name {
	case config.BackendMemory:
		return clipboard.NewMemory(), nil
	case config.BackendSystem:
		res, err := clipboard.NewSystem()
		if err != nil {
			return nil, errors.AccessError(err)
		}
		return res, nil
	default:
		return nil, errors.ConfigError("unknown server backend " + name + " (expected system or memory)")
	}
}

func init() {
	serverCmd.Flags().StringVar(&serverAddr, "addr", server.DefaultAddr, "Address to listen on")
	serverCmd.Flags().StringVar(&serverBackend, "backend", config.BackendSystem, "Clipboard backend (system, memory)")
	_ = serverCmd.RegisterFlagCompletionFunc("backend", cobra.FixedCompletions(
		[]string{config.BackendSystem, config.BackendMemory},
		cobra.ShellCompDirectiveNoFileComp,
	))
}
