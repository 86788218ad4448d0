package cmd

import (
	"limeade/pkg/errors"

	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy [text]",
	Short: "Copy text to the remote clipboard",
	Long:  `Copy the given text to the remote clipboard. Without an argument, standard input is streamed to the server.`,
	Example: `  limeade copy "hello"
  git diff | limeade copy --server workstation:2490`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			if err := c.Copy(cmd.Context(), args[0]); err != nil {
				return errors.Wrap(err, errors.ErrMsgCopyFailed)
			}
			return nil
		}

		if err := c.CopyStream(cmd.Context(), cmd.InOrStdin()); err != nil {
			return errors.Wrap(err, errors.ErrMsgCopyStdinFailed)
		}
		return nil
	},
}
