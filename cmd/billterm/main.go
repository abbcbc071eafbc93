// Command billterm is a terminal client for billsplit. Without arguments it
// opens the interactive bill terminal; exec runs one command line and exits.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmynk/billsplit/internal/client"
	"github.com/mmynk/billsplit/internal/terminal"
	"github.com/mmynk/billsplit/internal/tui"
	"github.com/mmynk/billsplit/pkg/logging"
)

// errCommandFailed makes exec exit with status 1 after its output was printed.
var errCommandFailed = errors.New("command failed")

// app holds the state shared by every subcommand.
type app struct {
	configPath string
	server     string
	cfg        *fileConfig

	httpClient *http.Client
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errCommandFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "billterm",
		Short: "Terminal client for billsplit",
		Long: `billterm drives a billsplit server with the bill command language.

Run without arguments for the interactive terminal, or use exec for a
single command line:

  billterm exec 'create "Dinner Bill" DB123456 RM; add DB123456 "Pizza" 25.50 2'`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
		RunE:              a.runInteractive,
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/billterm/config.yaml)")
	root.PersistentFlags().StringVar(&a.server, "server", "", "Server URL (overrides the config file)")

	root.AddCommand(a.registerCmd(), a.loginCmd(), a.logoutCmd(), a.execCmd())
	return root
}

func (a *app) loadConfig(*cobra.Command, []string) error {
	if a.configPath == "" {
		path, err := defaultConfigPath()
		if err != nil {
			return err
		}
		a.configPath = path
	}
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.server != "" {
		cfg.Server = a.server
	}
	a.cfg = cfg
	return nil
}

func (a *app) client() *client.Client {
	return client.New(a.httpClient, a.cfg.Server, a.cfg.Token)
}

func (a *app) registerCmd() *cobra.Command {
	var email, name string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Long: `Create an account and sign in. The password is prompted for without
echo on a terminal, or read as the first line of standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := a.readPassword()
			if err != nil {
				return err
			}
			c := a.client()
			user, err := c.Register(cmd.Context(), email, name, password)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			return a.saveSession(c, user.Email, user.DisplayName)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Long: `Sign in and remember the session. The password is prompted for without
echo on a terminal, or read as the first line of standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				email = a.cfg.Email
			}
			if email == "" {
				return errors.New("--email is required")
			}
			password, err := a.readPassword()
			if err != nil {
				return err
			}
			c := a.client()
			user, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			return a.saveSession(c, user.Email, user.DisplayName)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email (default: last used)")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.client().Logout(cmd.Context()); err != nil {
				// The token is dropped locally either way.
				slog.Debug("Logout request failed", "error", err)
			}
			a.cfg.Token = ""
			if err := a.cfg.save(a.configPath); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "Signed out.")
			return nil
		},
	}
}

func (a *app) execCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command line...>",
		Short: "Run one command line and print the result",
		Long: `Run one command line, exactly as typed in the interactive terminal.
Arguments are joined with spaces, so quote the line to keep inner quotes.
Exits with status 1 when any command reports an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := terminal.New(a.client(), logging.Discard())
			out := in.Execute(cmd.Context(), strings.Join(args, " "))
			for _, msg := range out.Messages {
				if msg.Kind == terminal.KindUser {
					continue
				}
				w := a.stdout
				if msg.Kind == terminal.KindError {
					w = a.stderr
				}
				fmt.Fprintln(w, msg.Text)
			}
			if out.HasErrors() {
				return errCommandFailed
			}
			return nil
		},
	}
}

func (a *app) runInteractive(cmd *cobra.Command, _ []string) error {
	logger := logging.Discard()
	if a.cfg.LogFile != "" {
		f, err := os.OpenFile(a.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = logging.New(f, slog.LevelDebug, "text")
	}
	// Anything logging through the default logger must stay off the screen.
	slog.SetDefault(logger)

	c := a.client()
	title := a.cfg.Server
	if user, err := c.CurrentUser(cmd.Context()); err == nil {
		title = user.DisplayName + " @ " + a.cfg.Server
	} else {
		logger.Info("Starting signed out", "error", err)
	}

	return tui.Run(cmd.Context(), terminal.New(c, logger), title)
}

func (a *app) saveSession(c *client.Client, email, displayName string) error {
	a.cfg.Token = c.Token()
	a.cfg.Email = email
	if err := a.cfg.save(a.configPath); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Signed in as %s (%s).\n", displayName, email)
	return nil
}

// readPassword prompts with echo disabled when stdin is a terminal. Piped
// input supplies the password as its first line.
func (a *app) readPassword() (string, error) {
	var password string
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.stderr, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		password = string(b)
	} else {
		line, err := bufio.NewReader(a.stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return "", errors.New("password is required")
	}
	return password, nil
}
