package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pior/adc"
	"github.com/pior/adc/proto"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newDecodeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [line...]",
		Short: "Parse ADC lines and print their fields",
		Long: `Parse ADC lines and print their fields.

Lines are taken from the arguments (without terminator) or, when there is
none, read from --input or stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cmds []*proto.Command
			var err error
			if len(args) > 0 {
				cmds, err = decodeArgs(args, v.GetBool("legacy"))
			} else {
				cmds, err = decodeStream(cmd, v)
			}

			// Print what was decoded before a stream error.
			if v.GetBool("table") {
				renderTable(cmd.OutOrStdout(), cmds)
			} else {
				for _, c := range cmds {
					fmt.Fprintln(cmd.OutOrStdout(), describe(c))
				}
			}
			return err
		},
	}

	cmd.Flags().String("input", "", "file to read lines from (default stdin)")
	cmd.Flags().Bool("table", false, "render the commands as a table")
	cmd.Flags().Bool("skip-malformed", false, "log and skip malformed lines instead of stopping")
	cmd.Flags().Uint32("max-malformed", 10, "consecutive malformed lines tolerated with --skip-malformed")
	return cmd
}

func decodeArgs(args []string, legacy bool) ([]*proto.Command, error) {
	cmds := make([]*proto.Command, 0, len(args))
	for _, line := range args {
		c, err := proto.Parse(line, legacy)
		if err != nil {
			return cmds, fmt.Errorf("%q: %w", line, err)
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

func decodeStream(cmd *cobra.Command, v *viper.Viper) ([]*proto.Command, error) {
	in, err := inputFrom(cmd, v.GetString("input"))
	if err != nil {
		return nil, err
	}
	defer in.Close()

	config := adc.DefaultReaderConfig()
	config.Legacy = v.GetBool("legacy")
	if v.GetBool("skip-malformed") {
		config.MalformedLineBreaker = adc.NewMalformedLineBreaker("decode", v.GetUint32("max-malformed"), 0, time.Minute)
	}

	r := adc.NewReader(in, config)

	var cmds []*proto.Command
	for {
		c, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return cmds, err
		}
		cmds = append(cmds, c)
	}

	stats := r.Stats()
	log.Debug().
		Uint64("lines", stats.Lines).
		Uint64("commands", stats.Commands).
		Uint64("keep_alives", stats.KeepAlives).
		Uint64("malformed", stats.Malformed).
		Msg("decoded stream")
	return cmds, nil
}

func header(c *proto.Command) (from, to, features string) {
	from, to, features = "-", "-", "-"
	if c.Type.NeedsFrom() || c.Type == proto.TypeInfo {
		from = c.From.String()
	}
	if c.Type.NeedsTo() {
		to = c.To.String()
	}
	if c.Type.NeedsFeatures() {
		features = c.Features
	}
	return from, to, features
}

func quoteParams(params []string) string {
	quoted := make([]string, len(params))
	for i, p := range params {
		quoted[i] = strconv.Quote(p)
	}
	return strings.Join(quoted, " ")
}

func describe(c *proto.Command) string {
	from, to, features := header(c)
	return fmt.Sprintf("%s %s from=%s to=%s features=%s params=[%s]", c.Type, c.Code, from, to, features, quoteParams(c.Params))
}

func renderTable(w io.Writer, cmds []*proto.Command) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Type", "Code", "From", "To", "Features", "Params"})
	tw.SetBorder(true)
	tw.SetAutoWrapText(false)

	for _, c := range cmds {
		from, to, features := header(c)
		tw.Append([]string{c.Type.String(), c.Code.String(), from, to, features, quoteParams(c.Params)})
	}
	tw.Render()
}
