package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/auth"
	"github.com/abhisek/cogniq/internal/store"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in and save the session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		email := args[0]
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}
		if err := loginAndSave(cmd.Context(), sess, email, password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		if strings.TrimSpace(name) == "" {
			return errors.New("--name is required")
		}

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		email := args[0]
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		user, err := sess.client.Register(ctx, api.RegisterRequest{Name: name, Email: email, Password: password})
		if err != nil {
			return err
		}
		if err := loginAndSave(ctx, sess, email, password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Your account (id %d) is ready and you are logged in.\n", user.Name, user.ID)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.CredentialRepo().Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear credentials: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		out := cmd.OutOrStdout()
		if sess.client.Token() == "" {
			fmt.Fprintln(out, "Not logged in. Run: cogniq login <email>")
			return nil
		}

		offline, _ := cmd.Flags().GetBool("offline")
		if offline {
			claims, err := auth.Inspect(sess.client.Token())
			if err != nil {
				return err
			}
			if claims.ExpiresAt == nil {
				fmt.Fprintln(out, claims.Subject)
				return nil
			}
			fmt.Fprintf(out, "%s (token expires %s)\n", claims.Subject, claims.ExpiresAt.Local().Format(time.DateTime))
			return nil
		}

		user, err := sess.client.Me(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
		return nil
	},
}

// loginAndSave logs in and stores the token for later commands.
func loginAndSave(ctx context.Context, sess *session, email, password string) error {
	tok, err := sess.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return sess.store.CredentialRepo().Save(ctx, store.Credentials{
		Email:   email,
		Token:   tok.AccessToken,
		SavedAt: time.Now(),
	})
}

// readPassword takes --password, then COGNIQ_PASSWORD, then a prompt on
// stdin. A terminal prompt does not echo.
func readPassword(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("password"); p != "" {
		return p, nil
	}
	if p := os.Getenv("COGNIQ_PASSWORD"); p != "" {
		return p, nil
	}
	return promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
}

func promptPassword(in io.Reader, prompt io.Writer) (string, error) {
	fmt.Fprint(prompt, "Password: ")

	var password string
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		password = string(b)
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if password == "" {
		return "", errors.New("password is required")
	}
	return password, nil
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().String("password", "", "Password (prompted when omitted)")
	}
	registerCmd.Flags().String("name", "", "Display name")
	whoamiCmd.Flags().Bool("offline", false, "Read the saved token instead of asking the platform")
}
