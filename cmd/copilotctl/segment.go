package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/reading-copilot/internal/smarttext"
)

func newSegmentCmd() *cobra.Command {
	var paragraphs bool

	cmd := &cobra.Command{
		Use:   "segment [file|-]",
		Short: "Print sentences (or paragraphs) one per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			var units []string
			if paragraphs {
				units = smarttext.SegmentParagraphs(text)
			} else {
				units = smarttext.Segment(text)
			}

			out := cmd.OutOrStdout()
			for _, u := range units {
				fmt.Fprintln(out, u)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&paragraphs, "paragraphs", false, "split into paragraphs instead of sentences")
	return cmd
}
