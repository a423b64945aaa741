package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/grayscale-mcp/internal/server"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "grayscale-mcp",
	Short: "MCP server for RGB to grayscale conversion",
	Long: `grayscale-mcp converts RGB images to grayscale using
Gray = 0.299*R + 0.587*G + 0.114*B.

Without a subcommand it runs the MCP server over stdin/stdout.
Configure it in your MCP client (e.g., Claude Desktop).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.grayscale-mcp.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: info or debug")
	rootCmd.PersistentFlags().Int("max-request-bytes", server.DefaultMaxRequestBytes, "largest accepted request line in bytes")
	cobra.CheckErr(viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("max_request_bytes", rootCmd.PersistentFlags().Lookup("max-request-bytes")))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".grayscale-mcp" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".grayscale-mcp")
	}

	viper.SetEnvPrefix("GRAYSCALE_MCP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// stdout carries the protocol, so diagnostics go to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := viper.ReadInConfig(); err == nil {
		log.Printf("Using config file: %s", viper.ConfigFileUsed())
	}
}

// debugEnabled reports whether log_level is "debug".
func debugEnabled() bool {
	return strings.EqualFold(viper.GetString("log_level"), "debug")
}
