package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/golftaweerak/sciquiz/internal/screens/home"
	"github.com/golftaweerak/sciquiz/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved session (and optionally history)",
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

		ctx := cmd.Context()
		if err := st.Sessions().Clear(ctx, home.SessionKey); err != nil {
			return fmt.Errorf("clear saved session: %w", err)
		}
		fmt.Println("Saved session discarded.")

		if all, _ := cmd.Flags().GetBool("history"); all {
			if err := st.Results().Clear(ctx); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Println("History cleared.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("history", false, "Also clear the results history")
}
