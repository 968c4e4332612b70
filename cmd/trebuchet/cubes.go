package main

import (
	"github.com/spf13/cobra"

	"github.com/ib-77/trebuchet/internal/config"
	"github.com/ib-77/trebuchet/pkg/cubes"
)

// localKeys maps flags defined by a single subcommand to configuration keys.
var localKeys = map[string]string{
	"red":   config.KeyRed,
	"green": config.KeyGreen,
	"blue":  config.KeyBlue,
}

func newCubesCmd(a *app) *cobra.Command {
	var power bool

	cmd := &cobra.Command{
		Use:   "cubes",
		Short: "Score cube games",
		Long: `Every line is a game such as "Game 3: 8 green, 6 blue; 1 red".

By default a game scores its id when the bag holds enough cubes of every
colour for all of its sets (--red, --green, --blue). With --power it scores
the product of the fewest cubes of each colour that make it possible.
Malformed games score nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if power {
				return a.run(cmd, cubes.Power())
			}

			limits := a.cfg.Limits
			return a.run(cmd, cubes.Possible(cubes.Limits{
				Red:   limits.Red,
				Green: limits.Green,
				Blue:  limits.Blue,
			}))
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&power, "power", false, "score the power of the minimal bag instead")
	flags.Uint64("red", 12, "red cubes in the bag")
	flags.Uint64("green", 13, "green cubes in the bag")
	flags.Uint64("blue", 14, "blue cubes in the bag")
	return cmd
}
