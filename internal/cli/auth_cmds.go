package cli

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fittrack/go-fitness-client/auth"
	"github.com/fittrack/go-fitness-client/oauthlogin"
	"github.com/fittrack/go-fitness-client/storage"
	"github.com/fittrack/go-fitness-client/token"
)

func newLoginCmd(a **app) *cobra.Command {
	var (
		email    string
		password string
		provider string
		remember bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with credentials or an OAuth provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := *a
			if provider != "" {
				return providerLogin(cmd, app, provider)
			}

			if email == "" {
				email = prompt(cmd, "Email: ")
			}
			if password == "" {
				password = prompt(cmd, "Password: ")
			}

			route, err := app.session.Login(cmd.Context(), auth.LoginRequest{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}
			app.store.Set(storage.KeyRememberMe, remember)

			cmd.Printf("Signed in. Next stop: %s\n", route)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&provider, "provider", "", "OAuth provider (google, github)")
	cmd.Flags().BoolVar(&remember, "remember", false, "stay signed in")
	return cmd
}

// providerLogin runs the OAuth path. With an OIDC issuer configured the
// full authorization-code flow runs locally; otherwise the backend's
// redirect URL is printed and the user pastes the callback back in.
func providerLogin(cmd *cobra.Command, app *app, provider string) error {
	var raw string

	if issuer := app.cfg.GetOAuthIssuerURL(); issuer != "" {
		flow, err := oauthlogin.NewFlow(cmd.Context(), oauthlogin.FlowConfig{
			ClientID:     app.cfg.GetOAuthClientID(),
			ClientSecret: app.cfg.GetOAuthClientSecret(),
			IssuerURL:    issuer,
		})
		if err != nil {
			return err
		}
		raw, err = flow.Run(cmd.Context(), func(authURL string) error {
			cmd.Printf("Open this URL in your browser to sign in:\n\n  %s\n\n", authURL)
			return nil
		})
		if err != nil {
			return err
		}
	} else {
		cmd.Printf("Open this URL in your browser to sign in:\n\n  %s\n\n",
			oauthlogin.AuthorizationURL(app.api.BackendURL(), provider))
		callback := prompt(cmd, "Paste the redirect URL you landed on: ")

		var err error
		raw, err = oauthlogin.ParseCallback(callback)
		if err != nil {
			return err
		}
	}

	route, err := app.session.HandleOAuthToken(cmd.Context(), raw)
	if err != nil {
		return err
	}
	cmd.Printf("Signed in. Next stop: %s\n", route)
	return nil
}

func newRegisterCmd(a **app) *cobra.Command {
	var req auth.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := *a
			if req.Email == "" {
				req.Email = prompt(cmd, "Email: ")
			}
			if req.FirstName == "" {
				req.FirstName = prompt(cmd, "First name: ")
			}
			if req.LastName == "" {
				req.LastName = prompt(cmd, "Last name: ")
			}
			if req.Password == "" {
				req.Password = prompt(cmd, "Password: ")
			}

			if err := auth.ValidatePasswordStrength(req.Password); err != nil {
				return err
			}

			route, err := app.session.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			cmd.Printf("Account created. Next stop: %s\n", route)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	return cmd
}

func newLogoutCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear stored credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			(*a).session.Logout()
			return nil
		},
	}
}

func newWhoamiCmd(a **app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := *a
			if err := app.requireAuth(); err != nil {
				return err
			}

			user := app.session.CurrentUser()
			if user == nil {
				// Authenticated without a cached profile, fetch it.
				fetched, err := app.users.Profile(cmd.Context())
				if err != nil {
					return err
				}
				app.session.UpdateUser(*fetched)
				user = fetched
			}

			if asJSON {
				return printJSON(cmd, user)
			}
			cmd.Printf("%s <%s> (%s)\n", user.FullName(), user.Email, user.Role)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newRefreshCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := (*a).session.Refresh(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("Access token refreshed")
			return nil
		},
	}
}

func newTokenCmd(a **app) *cobra.Command {
	var decode bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print the stored access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw := (*a).session.Token()
			if raw == "" {
				return errors.New("no access token stored")
			}

			if !decode {
				cmd.Println(raw)
				return nil
			}

			payload, err := token.Decode(raw)
			if err != nil {
				return err
			}
			return printJSON(cmd, payload)
		},
	}
	cmd.Flags().BoolVar(&decode, "decode", false, "print the decoded payload instead of the raw token")
	return cmd
}

func prompt(cmd *cobra.Command, label string) string {
	cmd.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}
