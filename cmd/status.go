package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var statusRuns int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts and recent sync runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := OpenStore()
		if err != nil {
			return err
		}
		defer s.Close()

		counts, err := s.Counts(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Database: %s\n\n", s.Path)

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"Table", "Rows"})
		var total int64
		for _, c := range counts {
			tw.AppendRow(table.Row{c.Table, c.Count})
			total += c.Count
		}
		tw.AppendFooter(table.Row{"total", total})
		tw.Render()

		runs, err := s.RecentRuns(cmd.Context(), statusRuns)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("\nNo sync runs recorded.")
			return nil
		}

		fmt.Println()
		rw := table.NewWriter()
		rw.SetOutputMirror(os.Stdout)
		rw.SetStyle(table.StyleLight)
		rw.AppendHeader(table.Row{"Run", "Started", "Status", "Rows", "Error"})
		for _, r := range runs {
			id := r.ID
			if len(id) > 8 {
				id = id[:8]
			}
			errMsg := ""
			if r.Error != nil {
				errMsg = *r.Error
			}
			rw.AppendRow(table.Row{id, r.StartedAt, r.Status, r.RowsWritten, errMsg})
		}
		rw.Render()
		return nil
	},
}

func init() {
	statusCmd.Flags().IntVar(&statusRuns, "runs", 5, "Number of recent runs to show")
	rootCmd.AddCommand(statusCmd)
}
