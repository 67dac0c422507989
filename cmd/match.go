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

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank the available inventory for a single lead",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("lead", "l", "", "id of the lead to match (required)")
	matchCmd.Flags().IntP("limit", "n", 0, "maximum matches to return (default 10)")
	matchCmd.Flags().BoolP("auto-approve", "y", false, "print the report and exit without prompting")

	_ = matchCmd.MarkFlagRequired("lead")
}

func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	leadID, _ := cmd.Flags().GetString("lead")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 && config.Match != nil {
		limit = config.Match.Limit
	}

	db, err := store.Open(config.Store.Path)
	if err != nil {
		zlog.Fatal("opening the store", zap.String("path", config.Store.Path), zap.Error(err))
	}
	defer db.Close()

	lead, found, err := db.GetLead(ctx, leadID)
	if err != nil {
		zlog.Fatal("getting the lead", zap.String("lead_id", leadID), zap.Error(err))
	}
	if !found {
		zlog.Fatal("lead not found", zap.String("lead_id", leadID))
	}

	leadLog := logger.WithFields(zlog, logger.StringFields(
		logger.StringField{Key: "lead_id", Value: lead.ID},
		logger.StringField{Key: "lead_name", Value: lead.Name},
		logger.StringField{Key: "stage", Value: lead.Stage},
	)...)

	engine := matching.NewEngine(db, zlog)

	matches, err := engine.FindMatches(ctx, lead, limit)
	if err != nil {
		leadLog.Fatal("finding matches", zap.Error(err))
	}

	if len(matches) == 0 {
		leadLog.Info("exiting", zap.String("reason", "no matches above the relevance floor"))
		return
	}

	pretty, _ := json.MarshalIndent(matches, "", "  ")
	fmt.Println(string(pretty))

	auto, _ := cmd.Flags().GetBool("auto-approve")
	if auto {
		return
	}

	if err := matchActionLoop(leadLog, matches); err != nil {
		leadLog.Fatal("exiting", zap.Error(err))
	}
}

func matchActionLoop(zlog *zap.Logger, matches []matching.PropertyMatch) error {
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
			pretty, _ := json.MarshalIndent(matching.SummaryByTier(matches), "", "  ")
			fmt.Println(string(pretty))
		case PromptDumpToFile:
			filename, err := matching.DumpToTmpFile(matches, "matches_*.json")
			if err != nil {
				return fmt.Errorf("dump matches to file: %w", err)
			}
			zlog.Info("dumped matches to file", zap.String("filename", filename))
		case PromptDone:
			return nil
		}
	}
}
