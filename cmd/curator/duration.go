package main

import (
	"fmt"
	"strconv"

	"github.com/mantonx/curator/internal/transforms"
	"github.com/spf13/cobra"
)

func newDurationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duration",
		Short: "Format or parse [H:]MM:SS durations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "format <seconds>",
		Short: "Print seconds as [H:]MM:SS (empty for zero or less)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("seconds must be an integer: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), transforms.FormatSeconds(seconds))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "parse <text>",
		Short: "Print the number of seconds in [H:]MM:SS text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, ok := transforms.ParseDuration(args[0])
			if !ok {
				return fmt.Errorf("invalid duration %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), seconds)
			return nil
		},
	})

	return cmd
}
