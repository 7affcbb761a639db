package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/cogniq/internal/app"
	"github.com/abhisek/cogniq/internal/screen"
)

// runApp opens the store, restores the saved login and launches the TUI.
func runApp(cmd *cobra.Command) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	skip, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(app.Options{
		Deps: screen.Deps{
			Client:      sess.client,
			EventRepo:   sess.store.EventRepo(),
			Credentials: sess.store.CredentialRepo(),
			Config:      sess.cfg,
		},
		SkipSplash: skip,
	})
}

func init() {
	rootCmd.Flags().Bool("no-splash", false, "Start on the home screen")
}
