// Command samplebot is a reference battleship bot. It is invoked with the
// serialized shot board as its only argument and prints the cell to fire at.
// SAMPLEBOT_STRATEGY selects "hunt" (the default) or "random".
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/battlebots/internal/dependencies/random"
	"github.com/mcoot/battlebots/internal/services/bot"
)

func main() {
	strategyName := os.Getenv("SAMPLEBOT_STRATEGY")
	if strategyName == "" {
		strategyName = "hunt"
	}

	cmd := &cobra.Command{
		Use:          "samplebot <shot-board>",
		Short:        "Reference battleship bot",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,

		// Boards starting with a miss begin with "-1"
		DisableFlagParsing: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := bot.NewStrategy(strategyName, random.New())
			if err != nil {
				return err
			}
			move, err := bot.Respond(args[0], strategy)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), move)
			return err
		},
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
