package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"glmirror/internal/envelope"
	"glmirror/internal/record"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Classify a JSON payload without writing anything",
	Long:  "Shows which shape a payload classifies as, and for collections the element shape and count. Reads stdin with no argument.",
	Args:  cobra.MaximumNArgs(1),
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

		if inspectJSON {
			out := map[string]any{"diags": env.Diags}
			if env.Classified != nil {
				out["base_type"] = env.Classified.BaseType()
				if l, ok := env.Classified.(*record.List); ok {
					out["element_type"] = l.Base
					out["count"] = len(l.Items)
				}
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		if env.Classified == nil {
			fmt.Printf("Unclassified: %v\n", env.Diags)
			return nil
		}
		switch r := env.Classified.(type) {
		case *record.List:
			if r.Base == "" {
				fmt.Println("EmptyList")
				return nil
			}
			fmt.Printf("%s (%d × %s)\n", r.Plural, len(r.Items), r.Base)
		case *record.Unknown:
			fmt.Println("Unknown (no shape matched)")
		default:
			fmt.Println(r.BaseType())
		}
		for _, d := range env.Diags {
			fmt.Printf("  diag: %s\n", d)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(inspectCmd)
}
