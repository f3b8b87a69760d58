package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alichraghi/shady/internal/logging"
	"github.com/alichraghi/shady/internal/passdriver"
)

var (
	cfgFile  string
	logLevel string
	cacheDir string
)

// newRootCommand builds the shadyc root command, binding persistent
// flags to viper so config can come from a YAML file, environment
// variables (SHADYC_* prefix) or the flags themselves, in that
// increasing order of precedence -- the standard spf13/cobra +
// spf13/pflag + spf13/viper wiring.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "shadyc",
		Short: "shady compiler middle-end driver",
		Long: "shadyc runs the compiler pipeline's passes and optional back-end\n" +
			"over a module, per spec.md's CompilerConfig (§6.1).",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "path to a YAML compiler config file")
	flags.StringVar(&logLevel, "log-level", "info", "error|warn|info|debug|debugv|debugvv")
	flags.StringVar(&cacheDir, "cache-dir", ".shady-cache", "analysis cache directory (internal/analysis.Cache)")

	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("cache_dir", flags.Lookup("cache-dir"))

	root.AddCommand(newCompileCommand())
	root.AddCommand(newWatchCommand())
	root.AddCommand(newReplCommand())
	return root
}

func initConfig() error {
	viper.SetEnvPrefix("shadyc")
	viper.AutomaticEnv()
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("shadyc: reading config %s: %w", cfgFile, err)
		}
	}
	applyLogLevel(viper.GetString("log_level"))
	return nil
}

func applyLogLevel(s string) {
	levels := map[string]logging.Level{
		"error": logging.Error, "warn": logging.Warn, "info": logging.Info,
		"debug": logging.Debug, "debugv": logging.DebugV, "debugvv": logging.DebugVV,
	}
	if lvl, ok := levels[s]; ok {
		logging.Default.SetLevel(lvl)
	}
}

// loadCompilerConfig decodes passdriver.Config from viper, falling
// back to passdriver.DefaultConfig for anything not set in the file,
// env, or flags.
func loadCompilerConfig() (passdriver.Config, error) {
	cfg := passdriver.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("shadyc: decoding compiler config: %w", err)
	}
	return cfg, nil
}
