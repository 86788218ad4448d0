package cmd

import (
	"bufio"

	"limeade/pkg/errors"

	"github.com/spf13/cobra"
)

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Write the remote clipboard to standard output",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}

		stream, err := c.PasteStream(cmd.Context())
		if err != nil {
			return errors.Wrap(err, errors.ErrMsgPasteFailed)
		}

		out := bufio.NewWriter(cmd.OutOrStdout())
		for chunk, err := range stream.Chunks() {
			if err != nil {
				return errors.Wrap(err, errors.ErrMsgStreamFailed)
			}
			if _, err := out.Write(chunk); err != nil {
				return errors.Wrap(err, errors.ErrMsgStdoutFailed)
			}
			if err := out.Flush(); err != nil {
				return errors.Wrap(err, errors.ErrMsgStdoutFailed)
			}
		}
		return nil
	},
}
