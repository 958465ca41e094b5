package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/golftaweerak/sciquiz/internal/app"
	"github.com/golftaweerak/sciquiz/internal/bank"
	"github.com/golftaweerak/sciquiz/internal/logger"
	"github.com/golftaweerak/sciquiz/internal/store"
	"github.com/golftaweerak/sciquiz/internal/timer"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	playCmd.Flags().String("bank", "", "Path to a question bank JSON file (default: built-in bank, or SCIQUIZ_BANK env var)")
	playCmd.Flags().String("timer", "", "Timer mode: none, perQuestion, or overall")
	playCmd.Flags().Int("seconds", 0, "Countdown seconds (per question or whole quiz depending on mode; 0 = default)")

	// So `sciquiz` with no subcommand accepts the same flags.
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}

// runPlay opens the store, loads the bank, and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}

	level, _ := cmd.Flags().GetString("log-level")
	log, closeLog := logger.Setup(filepath.Join(filepath.Dir(dbPath), "sciquiz.log"), level)
	defer func() { _ = closeLog() }()

	st, err := store.Open(dbPath, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	f, err := loadBank(cmd)
	if err != nil {
		return err
	}

	mode, err := resolveTimerMode(cmd)
	if err != nil {
		return err
	}
	seconds, _ := cmd.Flags().GetInt("seconds")
	if seconds < 0 {
		return fmt.Errorf("invalid --seconds %d", seconds)
	}

	sound, err := st.Prefs().GetBool(cmd.Context(), store.PrefSound, true)
	if err != nil {
		log.Warn().Err(err).Msg("read sound preference")
		sound = true
	}

	log.Info().Str("bank", f.Title).Str("timer", string(mode)).Msg("starting")

	return app.Run(app.Options{
		Store:     st,
		Log:       log,
		BankTitle: f.Title,
		Questions: f.Flatten(),
		TimerMode: mode,
		Seconds:   seconds,
		Sound:     sound,
	})
}

// loadBank reads the bank named by --bank, SCIQUIZ_BANK, or the
// embedded default, in that order.
func loadBank(cmd *cobra.Command) (*bank.File, error) {
	path, _ := cmd.Flags().GetString("bank")
	if path == "" {
		path = os.Getenv("SCIQUIZ_BANK")
	}
	if path == "" {
		return bank.Default()
	}
	f, err := bank.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return f, nil
}

// resolveTimerMode validates the --timer flag; unset means no timer.
func resolveTimerMode(cmd *cobra.Command) (timer.Mode, error) {
	raw, _ := cmd.Flags().GetString("timer")
	if raw == "" {
		return timer.ModeNone, nil
	}
	mode := timer.Mode(raw)
	if !mode.Valid() {
		return "", fmt.Errorf("invalid --timer %q (want none, perQuestion, or overall)", raw)
	}
	return mode, nil
}
