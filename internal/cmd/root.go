package cmd

import (
	"context"
	"strings"

	"github.com/Iron-Ham/roster/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Prison roster amnesty console",
	Long: `Roster generates a prison population and asks which articles to amnesty.

Articles are entered as a release expression: numbers separated by "," and
intervals separated by "-", e.g. "1,3,5-7". Every prisoner held under one of
those articles is released and the remaining population is shown.`,
	RunE: runSession,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/roster/config.yaml)")
	flags.Uint64("seed", 0, "random seed for the generated roster (0 picks one)")
	flags.Int("size", 0, "number of prisoners to generate")
	flags.String("names", "", "file of first names, one per line")
	flags.String("surnames", "", "file of surnames, one per line")
	flags.Bool("tui", false, "use the full-screen interface when running in a terminal")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	bindFlags()
}

// bindFlags binds the global flags to their config keys.
func bindFlags() {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("roster.seed", flags.Lookup("seed"))
	_ = viper.BindPFlag("roster.size", flags.Lookup("size"))
	_ = viper.BindPFlag("roster.names_file", flags.Lookup("names"))
	_ = viper.BindPFlag("roster.surnames_file", flags.Lookup("surnames"))
	_ = viper.BindPFlag("tui.enabled", flags.Lookup("tui"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
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
		viper.AddConfigPath("$HOME/.config/roster")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("ROSTER")
	// Replace dots with underscores for nested keys in env vars
	// e.g., ROSTER_ROSTER_SIZE for roster.size
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
