package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/golftaweerak/sciquiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show past quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath, zerolog.Nop())
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		results, err := st.Results().List(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list results: %w", err)
		}

		if len(results) == 0 {
			fmt.Println("No finished quizzes yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "FINISHED\tQUIZ\tSCORE\tACCURACY\tTIME")
		for _, res := range results {
			fmt.Fprintf(w, "%s\t%s\t%d/%d\t%.0f%%\t%d:%02d\n",
				res.FinishedAt.Format("2006-01-02 15:04"),
				res.Title,
				res.Score, res.Total,
				res.Percentage,
				res.DurationSecs/60, res.DurationSecs%60,
			)
		}
		return w.Flush()
	},
}

func init() {
	statsCmd.Flags().Int("limit", 20, "Maximum number of results to show (0 = all)")
}
