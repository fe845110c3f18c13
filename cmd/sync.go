package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"glmirror/internal/mirror"
)

var (
	syncConfig    string
	syncBaseURL   string
	syncProjectID int64
	syncEndpoints []string
	syncMaxPages  int
	syncJSON      bool
	syncQuiet     bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull project data from GitLab into the mirror",
	Long: "Pages the configured API endpoints, classifies each response, and upserts " +
		"the rows transactionally. Reads glmirror.yaml when --config is given; flags " +
		"override the file. The token comes from GLMIRROR_TOKEN or the config file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSyncConfig()
		if err != nil {
			return err
		}

		s, err := OpenStore()
		if err != nil {
			return err
		}
		defer s.Close()

		client, err := mirror.NewClient(cfg, logger)
		if err != nil {
			return err
		}
		engine := mirror.NewEngine(cfg, client, s, logger)

		report, err := engine.Run(cmd.Context())
		if report != nil {
			printReport(report)
		}
		return err
	},
}

func loadSyncConfig() (mirror.Config, error) {
	cfg := mirror.DefaultConfig()
	if syncConfig != "" {
		var err error
		cfg, err = mirror.LoadConfig(syncConfig)
		if err != nil {
			return cfg, err
		}
	} else if tok := os.Getenv("GLMIRROR_TOKEN"); tok != "" {
		cfg.Token = tok
	}
	if syncBaseURL != "" {
		cfg.BaseURL = syncBaseURL
	}
	if syncProjectID != 0 {
		cfg.ProjectID = syncProjectID
	}
	if len(syncEndpoints) > 0 {
		cfg.Endpoints = syncEndpoints
	}
	if syncMaxPages != 0 {
		cfg.MaxPages = syncMaxPages
	}
	return cfg, cfg.Validate()
}

func printReport(report *mirror.Report) {
	if syncJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
		return
	}
	if syncQuiet {
		return
	}
	shortID := report.RunID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	fmt.Printf("Run ID: %s\n", shortID)
	for _, ep := range report.Endpoints {
		if ep.Err != "" {
			fmt.Printf("  %-16s FAILED: %s\n", ep.Endpoint, ep.Err)
			continue
		}
		fmt.Printf("  %-16s %d pages, %d rows\n", ep.Endpoint, ep.Pages, ep.Rows)
	}
	fmt.Printf("\nResult: %s (%d rows)\n", report.Status, report.Rows)
}

func init() {
	syncCmd.Flags().StringVarP(&syncConfig, "config", "c", "", "Path to glmirror.yaml")
	syncCmd.Flags().StringVar(&syncBaseURL, "base-url", "", "GitLab instance URL")
	syncCmd.Flags().Int64Var(&syncProjectID, "project", 0, "Project ID to mirror")
	syncCmd.Flags().StringSliceVar(&syncEndpoints, "endpoints", nil, "Endpoints to sync (default all)")
	syncCmd.Flags().IntVar(&syncMaxPages, "max-pages", 0, "Page cap per endpoint")
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "Output report as JSON")
	syncCmd.Flags().BoolVar(&syncQuiet, "quiet", false, "Suppress non-essential output")
	rootCmd.AddCommand(syncCmd)
}
