package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"glmirror/internal/envelope"
	"glmirror/internal/materialize"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Classify a saved API payload and upsert it into the mirror",
	Long: "Reads a JSON payload from a file (or stdin with no argument), runs it " +
		"through the same classification and persistence path as sync, and reports " +
		"the rows written. Useful for replaying captured responses.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var body []byte
		var err error
		if len(args) == 1 {
			body, err = os.ReadFile(args[0])
		} else {
			body, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("reading payload: %w", err)
		}

		env := envelope.New(logger).WrapAndClassify(200, nil, body)
		if env.Classified == nil {
			return fmt.Errorf("payload did not classify: %v", env.Diags)
		}

		s, err := OpenStore()
		if err != nil {
			return err
		}
		defer s.Close()

		res, err := materialize.New(s, logger).Materialize(cmd.Context(), env.Classified)
		if err != nil {
			return err
		}

		fmt.Printf("Classified as %s: %d rows written", env.Classified.BaseType(), res.Rows)
		if res.Skipped > 0 {
			fmt.Printf(", %d elements skipped", res.Skipped)
		}
		fmt.Println()
		for _, h := range res.Handles {
			fmt.Printf("  %s\n", h)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
