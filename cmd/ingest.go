package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hsinyuc/talentsift/internal/extract"
	"github.com/hsinyuc/talentsift/internal/logger"
	"github.com/hsinyuc/talentsift/internal/store"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <resume.md> [more.md ...]",
	Short: "Parse resume markdown files and store the candidates",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ingest(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().BoolP("yes", "y", false, "replace existing candidates without confirmation")
	ingestCmd.Flags().Bool("dry-run", false, "print the parsed extract as JSON and do not touch the database")
}

func ingest(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	dryRun := cmd.Flag("dry-run").Value.String() == "true"
	autoApprove := cmd.Flag("yes").Value.String() == "true"

	var st *store.Store
	if !dryRun {
		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}
		st, err = openStore(config, logger)
		if err != nil {
			logger.Fatal("opening the store", zap.Error(err))
		}
	}

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Fatal("reading resume file", zap.String("path", path), zap.Error(err))
		}

		parsed := extract.Parse(string(data))

		if dryRun {
			pretty, _ := json.MarshalIndent(parsed, "", "  ")
			fmt.Println(string(pretty))
			continue
		}

		if parsed.Code104 == "" {
			logger.Warn("skipping file without a 104 code", zap.String("path", path))
			continue
		}

		if !autoApprove {
			if _, err := st.GetCandidate(ctx, parsed.Code104); err == nil {
				prompt := promptui.Select{
					Label: fmt.Sprintf("Candidate %s (%s) already exists, replace?", parsed.Code104, parsed.Name),
					Items: []string{PromptYes, PromptNo},
				}
				_, action, err := prompt.Run()
				if err != nil {
					logger.Fatal("exiting", zap.Error(err))
				}
				if action == PromptNo {
					logger.Info("skipping candidate", zap.String("code_104", parsed.Code104))
					continue
				}
			} else if !errors.Is(err, store.ErrNotFound) {
				logger.Fatal("checking existing candidate", zap.Error(err))
			}
		}

		if _, err := st.ReplaceCandidate(ctx, parsed); err != nil {
			logger.Fatal("storing candidate", zap.String("path", path), zap.Error(err))
		}
	}
}
