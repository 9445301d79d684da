package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version of the adc tool.
const Version = "0.1.0"

// newRootCmd builds the command tree. Each call returns a fresh tree with its
// own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "adc",
		Short: "decode, encode and benchmark ADC protocol lines",
		Long: fmt.Sprintf(`adc (v%s)

Tooling around the ADC (Advanced Direct Connect) command codec.
Flags can also be set with ADC_* environment variables or in a .env file.`, Version),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(v, cmd); err != nil {
				return err
			}
			return setupLogger(v.GetString("log-level"), cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().Bool("legacy", false, "use NMDC tunnelled lines ($ADC prefix, '|' terminator)")

	root.AddCommand(
		newDecodeCmd(v),
		newEncodeCmd(v),
		newEscapeCmd(v),
		newBenchCmd(v),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of adc",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "adc v%s\n", Version)
		},
	}
}

// initConfig loads .env files and binds the flags of cmd, so that a flag
// left unset falls back to ADC_<FLAG> (dashes become underscores).
func initConfig(v *viper.Viper, cmd *cobra.Command) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	v.SetEnvPrefix("adc")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v.BindPFlags(cmd.Flags())
}

func setupLogger(level string, out io.Writer) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out})
	return nil
}

func inputFrom(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(path)
}
