package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/rolwijzer/internal/catalog"
	"github.com/abhisek/rolwijzer/internal/config"
	"github.com/abhisek/rolwijzer/internal/logging"
	"github.com/abhisek/rolwijzer/internal/store"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "rolwijzer",
	Short: "Oefen de rollen van de leraar in opleiding",
	Long: `Rolwijzer is een terminal-app waarin je als leraar in opleiding situaties
doorloopt, erop reflecteert en per rol een portfolio van voorbeelden opbouwt.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/rolwijzer/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides ROLWIJZER_DB env var)")
	pf.String("catalog", "", "Path to a role catalogue YAML file")
	rootCmd.Flags().Bool("no-export", false, "Do not copy completed situations to the database")

	_ = viper.BindPFlag("store.path", pf.Lookup("db"))
	_ = viper.BindPFlag("catalog.path", pf.Lookup("catalog"))

	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(portfolioCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig layers defaults, the config file and ROLWIJZER_* env vars.
// A missing default config file is not an error.
func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigFile(config.ConfigFile())
	}

	viper.SetEnvPrefix("ROLWIJZER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile == "" && errors.Is(err, fs.ErrNotExist) {
			return
		}
		fmt.Fprintln(os.Stderr, "Warning: reading config:", err)
	}
}

// loadConfig returns the validated configuration with command-line
// overrides applied.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f := cmd.Flags().Lookup("no-export"); f != nil && f.Changed {
		noExport, _ := cmd.Flags().GetBool("no-export")
		cfg.Store.Export = !noExport
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db / store.path first,
// then ROLWIJZER_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.Store.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore loads the config and opens the export database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadCatalog loads the catalogue named by the config.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return catalog.Load(cfg.Catalog.Path)
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	return logging.New(logging.Config{
		Enabled: cfg.Logging.Enabled,
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.LogFile(),
	})
}
