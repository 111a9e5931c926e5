package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/dataquality/internal/reference"
)

func newReferenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Build reference data files",
	}
	cmd.AddCommand(newReferenceStatesCmd(), newReferenceZipsCmd())
	return cmd
}

func newReferenceStatesCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "states <states.txt>",
		Short: "Build a states JSON file from \"Full Name XX\" lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open states reference file: %w", err)
			}
			defer f.Close()

			states, err := reference.ParseStatesText(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if err := reference.WriteJSON(out, states); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d states to %s\n", len(states), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "states.json", "Output file")
	return cmd
}

func newReferenceZipsCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "zips <dir>",
		Short: "Build a zip JSON file from <state_name>_*.txt dumps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			statesFile, _ := cmd.Flags().GetString("states-file")
			states, err := reference.LoadStates(statesFile)
			if err != nil {
				return err
			}

			zips, err := reference.BuildZipsFromDir(args[0], states)
			if err != nil {
				return err
			}
			if err := reference.WriteJSON(out, zips); err != nil {
				return err
			}

			total := 0
			for _, z := range zips {
				total += len(z)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d zip codes for %d states to %s\n", total, len(zips), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "additional_state_code_data.json", "Output file")
	return cmd
}
