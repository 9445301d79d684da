package main

import (
	"errors"
	"fmt"

	"github.com/pior/adc"
	"github.com/pior/adc/proto"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newEncodeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <code> [param...]",
		Short: "Build an ADC line from its fields",
		Example: `  adc encode --type B --from AAAB MSG "hello world"
  adc encode --type F --from AAAB --features +TCP4 INF I4127.0.0.1
  adc encode --legacy SUP ADBASE`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCommand(v, args)
			if err != nil {
				return err
			}

			if c.Type == proto.TypeUDP {
				if cid := v.GetString("cid"); cid != "" {
					parsed, err := proto.ParseCID(cid)
					if err != nil {
						return err
					}
					_, err = fmt.Fprint(cmd.OutOrStdout(), c.FormatCID(parsed))
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), c.FormatUDP())
				return err
			}

			return adc.NewWriter(cmd.OutOrStdout(), adc.WriterConfig{Legacy: v.GetBool("legacy")}).Write(c)
		},
	}

	cmd.Flags().String("type", "B", "message type (B, C, D, E, F, I, H, U)")
	cmd.Flags().String("from", "", "origin SID (B, D, E, F)")
	cmd.Flags().String("to", "", "target SID (D, E)")
	cmd.Flags().String("features", "", "feature selector (F), e.g. +TCP4-NAT0")
	cmd.Flags().String("cid", "", "sender CID in base32 (U)")
	return cmd
}

func buildCommand(v *viper.Viper, args []string) (*proto.Command, error) {
	if len(args[0]) != 3 {
		return nil, fmt.Errorf("command code must be 3 characters, got %q", args[0])
	}

	typeFlag := v.GetString("type")
	if v.GetBool("legacy") {
		typeFlag = string(proto.TypeClient)
	}
	if len(typeFlag) != 1 || !proto.Type(typeFlag[0]).Valid() {
		return nil, fmt.Errorf("invalid type %q", typeFlag)
	}
	typ := proto.Type(typeFlag[0])

	c := proto.NewCommand(proto.CodeOf(args[0]), typ)
	for _, p := range args[1:] {
		c.AddParam(p)
	}

	if typ.NeedsFrom() {
		sid, err := sidFlag(v, "from")
		if err != nil {
			return nil, err
		}
		c.From = sid
	}
	if typ.NeedsTo() {
		sid, err := sidFlag(v, "to")
		if err != nil {
			return nil, err
		}
		c.To = sid
	}
	if typ.NeedsFeatures() {
		features := v.GetString("features")
		if features == "" || len(features)%5 != 0 {
			return nil, fmt.Errorf("--features must be a non empty list of 5 character selectors, got %q", features)
		}
		c.Features = features
	}

	return c, nil
}

var errSIDLength = errors.New("SID must be 4 characters")

func sidFlag(v *viper.Viper, name string) (proto.SID, error) {
	s := v.GetString(name)
	if len(s) != 4 {
		return 0, fmt.Errorf("--%s %q: %w", name, s, errSIDLength)
	}
	return proto.SIDOf(s), nil
}
