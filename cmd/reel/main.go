package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath string
	dbPath     string
	logLevel   string
	logFile    string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "reel",
	Short: "Discover movies from the terminal",
	Long: `reel searches the TMDB movie catalog as you type and keeps a local
count of which search terms are most popular.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("reel %s\n", Version)
		fmt.Println("Terminal movie discovery")
		fmt.Println("github.com/pders01/reel")
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to ~/.config/reel/config.toml, or to
the path given with --config. The catalog token is never written; provide it
through REEL_CATALOG_TOKEN, TMDB_API_KEY or a .env file.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := generateConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated default configuration at: %s\n", path)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the catalog once and print the results",
	Long: `Search the catalog once, record the search term and print the results
followed by related past searches and the trending list. Without a query the
popular listing is shown.`,
	RunE: runSearch,
}

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Print the most popular search terms",
	Args:  cobra.NoArgs,
	RunE:  runTrending,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to configuration file")
	pf.StringVar(&dbPath, "db", "", "Path to database file (overrides config)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, off (overrides config)")
	pf.StringVar(&logFile, "log-file", "", "Path to log file (overrides config)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Skip startup banner")

	configCmd.AddCommand(configGenCmd)
	rootCmd.AddCommand(versionCmd, configCmd, searchCmd, trendingCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
