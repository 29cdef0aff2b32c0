// Package cmd wires the agentmon CLI: configuration loading, the watch
// loop, and one-shot checks.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adlrocha/agent-notifications/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "agentmon",
	Short: "Attention monitor for agent processes",
	Long: `Agentmon watches agent processes through the kernel's process
tables and flags the ones that need a human: blocked on interactive
input, or stalled with frozen CPU counters.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/agentmon/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/agentmon")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("AGENTMON")
	// Replace dots with underscores for nested keys in env vars
	// e.g., AGENTMON_DETECT_STALL_TIMEOUT_SECONDS for detect.stall.timeout_seconds
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
