package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"hermannm.dev/devlog"
)

var logLevel slog.LevelVar

var rootCmd = &cobra.Command{
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	Use:   "wizardtoolkit",
	Short: "Cipher, hash, and keyring toolkit",
	Long: `wizardtoolkit enciphers and deciphers data with a choice of block
primitive and mode of operation, computes streaming digests, and
manages a per-user keyring file.`,
}

// Execute adds all child commands to the root command and runs it. It is
// called once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	slog.SetDefault(slog.New(devlog.NewHandler(os.Stdout, &devlog.Options{
		Level: &logLevel,
	})))

	rootCmd.PersistentFlags().Bool("debug", false, "print debug-level log output")
	rootCmd.PersistentFlags().String("home", "", "override the per-user state directory (defaults to WIZARD_HOME)")
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("home", rootCmd.PersistentFlags().Lookup("home"))

	cobra.OnInitialize(func() {
		if viper.GetBool("debug") {
			logLevel.Set(slog.LevelDebug)
		}
	})
}
