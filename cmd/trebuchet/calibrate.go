package main

import (
	"github.com/spf13/cobra"

	"github.com/ib-77/trebuchet/pkg/calibration"
)

func newCalibrateCmd(a *app) *cobra.Command {
	var words bool

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Sum the calibration values of the input",
		Long: `Every line contributes 10*first + last, where first and last are the first
and last digits of the line. With --words the spelled-out digits one to nine
count as digits too, overlapping ones included ("eightwo" is 82).
Lines without any digit contribute nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rule := calibration.Digits()
			if words {
				rule = calibration.Words()
			}
			return a.run(cmd, rule)
		},
	}

	cmd.Flags().BoolVar(&words, "words", false, "count spelled-out digits")
	return cmd
}
