package main

import (
	"github.com/ShigekuniWork/ocypode/internal/inspect"
	"github.com/ShigekuniWork/ocypode/pkg/topic"
	"github.com/spf13/cobra"
)

func topicCmd() *cobra.Command {
	var filter bool

	cmd := &cobra.Command{
		Use:   "topic VALUE",
		Short: "Validate a topic or topic filter",
		Long: `Validate a publish topic, or a subscription filter with --filter,
and print its layers and wildcard kind.

Examples:
  ocypode topic sensor/temp
  ocypode topic --filter "sensor/+/#"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter {
				f, err := topic.NewFilter(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), inspect.DescribeFilter(f))
			}

			t, err := topic.New(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), inspect.DescribeTopic(t))
		},
	}

	cmd.Flags().BoolVarP(&filter, "filter", "f", false, "Validate as a subscription filter")
	return cmd
}
