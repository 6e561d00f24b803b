package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lexcite/pkg/citation"
	"lexcite/pkg/citation/registry"
	"lexcite/pkg/ledger"
)

var (
	rootCmd = &cobra.Command{
		Use:          "citeql",
		Short:        "citeql",
		SilenceUsage: true,
		Long:         `citeql extracts, annotates and resolves legal citations in text files from the command line.`,
	}

	cfgFile    string
	tablesPath string
	ledgerPath string
	format     string
)

// Execute runs the citeql root command.
func Execute() error {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.citeql.yaml)")
	rootCmd.PersistentFlags().StringVar(&tablesPath, "tables", "", "path to a custom JSON or YAML data-table file, merged over the embedded defaults")
	rootCmd.PersistentFlags().StringVar(&ledgerPath, "ledger", "citeql.db", "path to the sqlite ledger database")
	rootCmd.PersistentFlags().StringVar(&format, "format", "text", "output format: text or json")

	_ = viper.BindPFlag("tables", rootCmd.PersistentFlags().Lookup("tables"))
	_ = viper.BindPFlag("ledger", rootCmd.PersistentFlags().Lookup("ledger"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))

	return rootCmd.Execute()
}

// initConfig reads a config file and environment variables so a flag not
// set on the command line falls back to ~/.citeql.yaml or CITEQL_* env vars
// instead of the cobra-declared default, letting a user pin tables/ledger
// paths once instead of passing them on every invocation.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".citeql")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("$HOME")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("citeql")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "citeql: could not read config file %s: %v\n", cfgFile, err)
	}

	if v := viper.GetString("tables"); v != "" && !rootCmd.PersistentFlags().Changed("tables") {
		tablesPath = v
	}
	if v := viper.GetString("ledger"); v != "" && !rootCmd.PersistentFlags().Changed("ledger") {
		ledgerPath = v
	}
	if v := viper.GetString("format"); v != "" && !rootCmd.PersistentFlags().Changed("format") {
		format = v
	}
}

// buildEngine loads the embedded data tables, optionally merging in
// --tables, and returns a ready-to-use citation.Engine.
func buildEngine() (*citation.Engine, error) {
	base, err := registry.DefaultTables()
	if err != nil {
		return nil, err
	}

	tables := base
	if tablesPath != "" {
		extra, err := loadTablesFile(tablesPath)
		if err != nil {
			return nil, err
		}
		tables = registry.Merge(base, extra)
	}

	return citation.NewEngine(tables)
}

func loadTablesFile(path string) (*registry.Tables, error) {
	f, err := openTablesFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if isYAMLPath(path) {
		return registry.LoadYAML(f)
	}
	return registry.LoadJSON(f)
}

// openLedger opens the sqlite ledger at --ledger.
func openLedger() (*ledger.Store, error) {
	return ledger.Open(ledgerPath)
}
