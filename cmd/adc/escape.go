package main

import (
	"fmt"

	"github.com/pior/adc/proto"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newEscapeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escape <text...>",
		Short: "Escape (or unescape) parameter values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			legacy := v.GetBool("legacy")
			for _, arg := range args {
				out := proto.Escape(arg, legacy)
				if v.GetBool("unescape") {
					var err error
					out, err = proto.Unescape(arg, legacy)
					if err != nil {
						return fmt.Errorf("%q: %w", arg, err)
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().BoolP("unescape", "u", false, "unescape instead of escaping")
	return cmd
}
