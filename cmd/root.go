package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "lead-matcher"
)

type Config struct {
	Store         *StoreConfig         `mapstructure:"store"`
	Match         *MatchConfig         `mapstructure:"match"`
	Opportunities *OpportunitiesConfig `mapstructure:"opportunities"`
	Import        *ImportConfig        `mapstructure:"import"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type MatchConfig struct {
	Limit int `mapstructure:"limit"`
}

type OpportunitiesConfig struct {
	Limit   int `mapstructure:"limit"`
	Workers int `mapstructure:"workers"`
}

type ImportConfig struct {
	PropertiesFile string `mapstructure:"properties-file"`
	LeadsFile      string `mapstructure:"leads-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "lead-matcher ranks a real-estate inventory against CRM leads and prioritizes leads by opportunity",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("store.path", "LEAD_MATCHER_DB"); err != nil {
		log.Fatalf("binding LEAD_MATCHER_DB environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is lead-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// The config file is optional: every key has a flag or env fallback.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Store == nil {
		config.Store = &StoreConfig{}
	}
	if config.Store.Path == "" {
		config.Store.Path = viper.GetString("store.path")
	}
	if config.Store.Path == "" {
		config.Store.Path = app + ".db"
	}

	return config, nil
}
