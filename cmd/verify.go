package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verifyJSON bool

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the mirror for orphaned rows and dangling references",
	Long:  "Scans every parent/child and reference relationship. A clean mirror exits 0; findings are listed and exit 1.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := OpenStore()
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := s.CheckIntegrity(cmd.Context())
		if err != nil {
			return err
		}

		if verifyJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			if report.Healthy() {
				fmt.Println("OK: no orphans, no dangling references")
				return nil
			}
			for _, o := range report.OrphanedChildren {
				fmt.Printf("orphan    %s/%s (no parent in %s)\n", o.Table, o.Key, o.Refers)
			}
			for _, o := range report.DanglingReferences {
				fmt.Printf("dangling  %s/%s -> %s\n", o.Table, o.Key, o.Refers)
			}
		}

		if !report.Healthy() {
			return fmt.Errorf("%d findings", len(report.OrphanedChildren)+len(report.DanglingReferences))
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(verifyCmd)
}
