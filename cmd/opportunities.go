package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/costaverde/lead-matcher/internal/logger"
	"github.com/costaverde/lead-matcher/internal/matching"
	"github.com/costaverde/lead-matcher/internal/store"
)

const (
	PromptTierSummary = "Show per-tier summary"
	PromptDumpToFile  = "Dump full report to file"
	PromptDone        = "Done"
)

var opportunitiesCmd = &cobra.Command{
	Use:   "opportunities",
	Short: "Rank all active leads by their best available matches",
	Run: func(cmd *cobra.Command, _ []string) {
		runOpportunities(cmd)
	},
}

func init() {
	rootCmd.AddCommand(opportunitiesCmd)

	opportunitiesCmd.Flags().IntP("limit", "n", 0, "maximum leads in the report (default 50)")
	opportunitiesCmd.Flags().IntP("workers", "w", 0, "per-lead scoring workers (default 4)")
	opportunitiesCmd.Flags().BoolP("auto-approve", "y", false, "print the report and exit without prompting")
}

func runOpportunities(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting the lead-matcher", zap.String("version", version))

	limit, _ := cmd.Flags().GetInt("limit")
	workers, _ := cmd.Flags().GetInt("workers")
	if config.Opportunities != nil {
		if limit <= 0 {
			limit = config.Opportunities.Limit
		}
		if workers <= 0 {
			workers = config.Opportunities.Workers
		}
	}

	db, err := store.Open(config.Store.Path)
	if err != nil {
		zlog.Fatal("opening the store", zap.String("path", config.Store.Path), zap.Error(err))
	}
	defer db.Close()

	engine := matching.NewEngine(db, zlog)
	engine.SetWorkers(workers)

	opportunities, err := engine.FindTopOpportunities(ctx, limit)
	if err != nil {
		zlog.Fatal("finding opportunities", zap.Error(err))
	}

	if len(opportunities) == 0 {
		zlog.Info("exiting", zap.String("reason", "no leads with matches above the relevance floor"))
		return
	}

	pretty, _ := json.MarshalIndent(matching.Summarize(opportunities), "", "  ")
	fmt.Println(string(pretty))

	auto, _ := cmd.Flags().GetBool("auto-approve")
	if auto {
		return
	}

	if err := opportunityActionLoop(zlog, opportunities); err != nil {
		zlog.Fatal("exiting", zap.Error(err))
	}
}

func opportunityActionLoop(zlog *zap.Logger, opportunities []matching.LeadOpportunity) error {
	for {
		prompt := promptui.Select{
			Label: "Next action",
			Items: []string{PromptTierSummary, PromptDumpToFile, PromptDone},
		}

		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptTierSummary:
			summary := make(map[matching.Tier]int)
			for _, o := range opportunities {
				for tier, n := range matching.SummaryByTier(o.Matches) {
					summary[tier] += n
				}
			}
			pretty, _ := json.MarshalIndent(summary, "", "  ")
			fmt.Println(string(pretty))
		case PromptDumpToFile:
			filename, err := matching.DumpToTmpFile(opportunities, "opportunities_*.json")
			if err != nil {
				return fmt.Errorf("dump opportunities to file: %w", err)
			}
			zlog.Info("dumped opportunities to file", zap.String("filename", filename))
		case PromptDone:
			return nil
		}
	}
}
