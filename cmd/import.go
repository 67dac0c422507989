package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/costaverde/lead-matcher/internal/ingest"
	"github.com/costaverde/lead-matcher/internal/logger"
	"github.com/costaverde/lead-matcher/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Normalize raw CRM export files and load them into the store",
	Run: func(cmd *cobra.Command, _ []string) {
		runImport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("properties", "p", "", "JSON file with raw property records")
	importCmd.Flags().StringP("leads", "l", "", "JSON file with raw lead records")

	viper.BindPFlag("import.properties-file", importCmd.Flags().Lookup("properties"))
	viper.BindPFlag("import.leads-file", importCmd.Flags().Lookup("leads"))
}

func runImport(_ *cobra.Command) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	propertiesFile := viper.GetString("import.properties-file")
	leadsFile := viper.GetString("import.leads-file")
	if propertiesFile == "" && leadsFile == "" {
		zlog.Fatal("nothing to import",
			zap.String("hint", "pass --properties and/or --leads, or set the import section in the config file"),
		)
	}

	db, err := store.Open(config.Store.Path)
	if err != nil {
		zlog.Fatal("opening the store", zap.String("path", config.Store.Path), zap.Error(err))
	}
	defer db.Close()

	if propertiesFile != "" {
		properties, err := ingest.LoadPropertiesFile(propertiesFile, zlog)
		if err != nil {
			zlog.Fatal("loading properties", zap.String("path", propertiesFile), zap.Error(err))
		}
		if err := db.UpsertProperties(properties.Items); err != nil {
			zlog.Fatal("storing properties", zap.Error(err))
		}
		total, _ := db.CountProperties()
		zlog.Info("imported properties",
			zap.Int("loaded", properties.Len()),
			zap.Int("total_in_store", total),
		)
	}

	if leadsFile != "" {
		leads, err := ingest.LoadLeadsFile(leadsFile, zlog)
		if err != nil {
			zlog.Fatal("loading leads", zap.String("path", leadsFile), zap.Error(err))
		}
		if err := db.UpsertLeads(leads.Items); err != nil {
			zlog.Fatal("storing leads", zap.Error(err))
		}
		total, _ := db.CountLeads()
		zlog.Info("imported leads",
			zap.Int("loaded", leads.Len()),
			zap.Int("total_in_store", total),
		)
	}
}
