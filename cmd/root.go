package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/langtrainer/internal/affix"
	"github.com/abhisek/langtrainer/internal/config"
	"github.com/abhisek/langtrainer/internal/drill"
	"github.com/abhisek/langtrainer/internal/logger"
	"github.com/abhisek/langtrainer/internal/sampler"
	"github.com/abhisek/langtrainer/internal/session"
	"github.com/abhisek/langtrainer/internal/store"
)

// settings is loaded once per invocation by the root PersistentPreRunE.
var settings = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "langtrainer",
	Short: "Vocabulary drills in your terminal",
	Long: `langtrainer shows a short fill-in-the-blank exercise at a fixed interval.
Exercises come from JSON deck files; answers and recently seen tasks are kept
in a local SQLite database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		settings, _ = config.LoadWithPriority(cfgPath, logger.New("config"))

		level := settings.LogLevel()
		if lv, _ := cmd.Flags().GetString("log-level"); lv != "" {
			parsed, err := log.ParseLevel(lv)
			if err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", lv, err)
			}
			level = parsed
		}
		log.SetLevel(level)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LANGTRAINER_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config.toml")
	rootCmd.PersistentFlags().String("data", "", "Deck directory (overrides LANGTRAINER_DATA and decks.data_dir)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LANGTRAINER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database chosen by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// resolveDataDir applies --data over the settings file.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	flag, _ := cmd.Flags().GetString("data")
	return settings.ResolveDataDir(flag)
}

// newSuppressor builds the affix suppressor from the language settings.
func newSuppressor() *affix.Suppressor {
	return affix.New(
		affix.WithClitics(settings.Language.Clitics),
		affix.WithEndingMarker(settings.Language.EndingTypeMarker),
	)
}

// newRunner wires a drill engine from the settings. st may be nil, in
// which case nothing is persisted.
func newRunner(cmd *cobra.Command, st *store.Store, l *log.Logger) (*session.Runner, error) {
	dataDir, err := resolveDataDir(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve deck directory: %w", err)
	}

	engine := drill.NewEngine(
		drill.WithSampler(sampler.New(
			sampler.WithRecencyWindow(settings.Drill.RecencyWindow),
			sampler.WithLogger(l),
		)),
		drill.WithSuppressor(newSuppressor()),
		drill.WithOptionCount(settings.Drill.OptionCount),
	)

	deps := session.Deps{
		Engine:   engine,
		DataDir:  dataDir,
		Logger:   l,
		Interval: settings.Interval(),
	}
	if st != nil {
		deps.Events = st.EventRepo()
		deps.Recency = st.RecencyRepo()
	}
	return session.NewRunner(deps), nil
}
