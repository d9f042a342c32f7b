package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/slackclone/apiclient/client"
	"github.com/slackclone/apiclient/config"
	"github.com/slackclone/apiclient/credential"
	"github.com/slackclone/apiclient/internal/fakeapi"
	"github.com/slackclone/apiclient/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// app holds the state shared by all sub-commands of one invocation.
type app struct {
	apiURL    string
	appURL    string
	tokenFile string
	debug     bool
	noBrowser bool

	cfg *config.Config

	// openBrowser is swapped out in tests.
	openBrowser func(url string) error
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "slackctl",
		Short:         "Command line client for the slack-clone API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.apiURL, "api-url", "", "Base URL of the API (default $"+config.APIURLEnv+" or "+config.DefaultAPIURL+")")
	flags.StringVar(&a.appURL, "app-url", "", "Origin of the web app the login page lives on (default $APP_URL)")
	flags.StringVar(&a.tokenFile, "token-file", "", "Where the session token is kept (default $TOKEN_FILE or ~/.slackclone/storage.json)")
	flags.BoolVarP(&a.debug, "debug", "d", false, "Enable verbose debug output, including HTTP dumps")
	flags.BoolVar(&a.noBrowser, "no-browser", false, "Do not open the login page when the session expires")

	// Sub-commands
	rootCmd.AddCommand(a.newPingCmd())
	rootCmd.AddCommand(a.newRegisterCmd())
	rootCmd.AddCommand(a.newLoginCmd())
	rootCmd.AddCommand(a.newLogoutCmd())
	rootCmd.AddCommand(a.newProfileCmd())
	rootCmd.AddCommand(a.newStatusCmd())
	rootCmd.AddCommand(a.newWorkspacesCmd())
	rootCmd.AddCommand(a.newFakeAPICmd())

	return rootCmd
}

// init loads configuration, applies flag overrides and sets up logging.
func (a *app) init(cmd *cobra.Command) error {
	config.InitLogger(cmd.ErrOrStderr())

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.appURL != "" {
		cfg.AppURL = a.appURL
	}
	if a.tokenFile != "" {
		cfg.TokenFile = a.tokenFile
	}
	if a.debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return err
	}
	config.SetLogLevel(cfg.LogLevel)
	log.Debug().Str("api_url", cfg.APIURL).Str("token_file", cfg.TokenFile).Msg("configuration resolved")

	a.cfg = cfg
	return nil
}

func (a *app) store() *credential.File { return credential.NewFile(a.cfg.TokenFile) }

// newClient builds an API client backed by the token file. An expired
// session prints where to log in again and, unless disabled, opens it.
func (a *app) newClient(cmd *cobra.Command) (*client.Client, error) {
	loginURL, err := session.LoginURL(a.cfg.AppURL)
	if err != nil {
		return nil, err
	}
	redirect := session.NewRedirector(loginURL)
	if a.openBrowser != nil {
		redirect.Open = a.openBrowser
	}
	errOut := cmd.ErrOrStderr()
	onExpired := session.HandlerFunc(func(ctx context.Context) error {
		fmt.Fprintf(errOut, "Session expired. Log in again at %s\n", loginURL)
		if a.noBrowser {
			return nil
		}
		return redirect.SessionExpired(ctx)
	})

	return client.New(
		client.WithBaseURL(a.cfg.APIURL),
		client.WithHTTPTimeout(a.cfg.Timeout),
		client.WithDebugLogging(a.cfg.Debug),
		client.WithCredentialStore(a.store()),
		client.WithSessionExpiredHandler(onExpired),
		client.WithHeader("User-Agent", "slackctl"),
	)
}

// run wraps a client call with a timeout and timing logs.
func (a *app) run(cmd *cobra.Command, op string, fn func(ctx context.Context, c *client.Client) (any, error)) error {
	c, err := a.newClient(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Timeout)
	defer cancel()

	start := time.Now()
	out, err := fn(ctx, c)
	elapsed := time.Since(start)
	if err != nil {
		log.Debug().Err(err).Str("op", op).Dur("elapsed", elapsed).Msg("request failed")
		return err
	}
	log.Debug().Str("op", op).Dur("elapsed", elapsed).Msg("request completed")
	if out == nil {
		return nil
	}
	return printJSON(cmd.OutOrStdout(), out)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func (a *app) newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "ping", func(ctx context.Context, c *client.Client) (any, error) {
				return c.Ping(ctx)
			})
		},
	}
}

func (a *app) newRegisterCmd() *cobra.Command {
	var req client.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "register", func(ctx context.Context, c *client.Client) (any, error) {
				auth, err := c.Register(ctx, req)
				if err != nil {
					return nil, err
				}
				return auth.User, nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password, at least 6 characters (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) newLoginCmd() *cobra.Command {
	var req client.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "login", func(ctx context.Context, c *client.Client) (any, error) {
				auth, err := c.Login(ctx, req)
				if err != nil {
					return nil, err
				}
				return auth.User, nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store().Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Logged out")
			return nil
		},
	}
}

func (a *app) newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "profile", func(ctx context.Context, c *client.Client) (any, error) {
				return c.Profile(ctx)
			})
		},
	}
}

type status struct {
	LoggedIn  bool       `json:"logged_in"`
	TokenFile string     `json:"token_file"`
	UserID    string     `json:"user_id,omitempty"`
	Email     string     `json:"email,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired,omitempty"`
}

// newStatusCmd reports what the stored token says without calling the API.
func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session without contacting the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.store()
			st := status{TokenFile: store.Path()}
			token, ok, err := store.Get(cmd.Context())
			if err != nil {
				return err
			}
			if ok {
				st.LoggedIn = true
				claims, err := session.Inspect(token)
				if err != nil {
					log.Warn().Err(err).Msg("stored token is not a readable JWT")
				} else {
					st.UserID = string(claims.UserID)
					st.Email = claims.Email
					if claims.ExpiresAt != nil {
						exp := claims.ExpiresAt.Time.UTC()
						st.ExpiresAt = &exp
					}
					st.Expired = claims.Expired(time.Now())
				}
			}
			return printJSON(cmd.OutOrStdout(), st)
		},
	}
}

func (a *app) newWorkspacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"ws"},
		Short:   "Manage workspaces",
	}
	cmd.AddCommand(a.newWorkspacesListCmd())
	cmd.AddCommand(a.newWorkspacesCreateCmd())
	cmd.AddCommand(a.newWorkspacesGetCmd())
	cmd.AddCommand(a.newWorkspacesJoinCmd())
	return cmd
}

func (a *app) newWorkspacesListCmd() *cobra.Command {
	var params client.ListWorkspacesParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the workspaces you belong to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "list workspaces", func(ctx context.Context, c *client.Client) (any, error) {
				return c.ListWorkspaces(ctx, params)
			})
		},
	}
	cmd.Flags().IntVar(&params.Page, "page", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&params.Limit, "limit", 10, "Page size, at most 100")
	return cmd
}

func (a *app) newWorkspacesCreateCmd() *cobra.Command {
	var req client.CreateWorkspaceRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "create workspace", func(ctx context.Context, c *client.Client) (any, error) {
				return c.CreateWorkspace(ctx, req)
			})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Workspace name (required)")
	cmd.Flags().StringVar(&req.Username, "username", "", "Unique workspace handle (required)")
	cmd.Flags().StringVar(&req.Logo, "logo", "", "Logo URL (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("logo")
	return cmd
}

func (a *app) newWorkspacesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <workspace-id>",
		Short: "Show a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "get workspace", func(ctx context.Context, c *client.Client) (any, error) {
				return c.GetWorkspace(ctx, args[0])
			})
		},
	}
}

func (a *app) newWorkspacesJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <workspace-id>",
		Short: "Ask to join a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "join workspace", func(ctx context.Context, c *client.Client) (any, error) {
				if err := c.JoinWorkspace(ctx, args[0]); err != nil {
					return nil, err
				}
				return map[string]string{"workspace_id": args[0], "status": "pending"}, nil
			})
		},
	}
}

// newFakeAPICmd serves the in-memory backend for local development.
func (a *app) newFakeAPICmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "fake-api",
		Short: "Run an in-memory API server for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fakeapi.Serve(cmd.Context(), addr, fakeapi.New(fakeapi.Options{}), log.Logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}
