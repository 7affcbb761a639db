package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/auth"
	"github.com/abhisek/cogniq/internal/config"
	"github.com/abhisek/cogniq/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "cogniq",
	Short: "Cognitive assessments in your terminal",
	Long: "cogniq: terminal client for the cognitive-assessment learning platform.\n" +
		"Take technical and behavioral assessments, browse courses and review your progress.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(".env"); err != nil {
			fmt.Fprintln(os.Stderr, "warning:", err)
		}
		level := slog.LevelWarn
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
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
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides COGNIQ_DB env var)")
	rootCmd.PersistentFlags().String("api", "", "Platform API base URL (overrides COGNIQ_API_URL env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, whoamiCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resubmitCmd)
	rootCmd.AddCommand(requestsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment, applies --api and validates.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.ConfigFromEnv()
	if err != nil {
		return cfg, err
	}
	if u, _ := cmd.Flags().GetString("api"); u != "" {
		cfg.APIURL = u
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	slog.Debug("config loaded", "api", cfg.APIURL, "timeout", cfg.Timeout)
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then COGNIQ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = cfg.DBPath
	}
	if p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command, cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	slog.Debug("opening store", "path", dbPath)
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// session bundles what most commands need.
type session struct {
	cfg    config.Config
	store  *store.Store
	client *api.Client
}

func (s *session) Close() error {
	return s.store.Close()
}

// openSession loads config, opens the store and builds a client carrying
// the saved token, if any. An expired saved token is dropped with a note.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	st, err := openStore(cmd, cfg)
	if err != nil {
		return nil, err
	}
	client := api.NewClientFromConfig(cfg, st.EventRepo())

	creds, err := st.CredentialRepo().Load(cmd.Context())
	switch {
	case errors.Is(err, store.ErrNoCredentials):
	case err != nil:
		st.Close()
		return nil, fmt.Errorf("load credentials: %w", err)
	case auth.Check(creds.Token, time.Now()) != nil:
		slog.Info("saved login has expired", "email", creds.Email)
	default:
		client.SetToken(creds.Token)
	}

	return &session{cfg: cfg, store: st, client: client}, nil
}
