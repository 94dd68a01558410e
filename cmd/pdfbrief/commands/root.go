package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdfbrief/pdfbrief/internal/api"
	"github.com/pdfbrief/pdfbrief/internal/config"
	"github.com/pdfbrief/pdfbrief/internal/credentials"
	"github.com/pdfbrief/pdfbrief/internal/logging"
	"github.com/pdfbrief/pdfbrief/internal/session"
	"github.com/pdfbrief/pdfbrief/internal/tui"
)

var serverOverride string

// app bundles the wired-up collaborators every command needs.
type app struct {
	cfg    *config.AppConfig
	logger zerolog.Logger
	closer io.Closer
	creds  *credentials.Store
	client *api.Client
	sess   *session.Store
}

// newApp loads configuration and wires the credential store, HTTP client,
// and session store. The client's 401 policy points at the session store so
// any rejected request tears the session down.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if serverOverride != "" {
		cfg.Server.URL = serverOverride
	}

	logger, closer, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	credsPath := cfg.CredentialsFile
	if credsPath == "" {
		credsPath, err = credentials.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	creds := credentials.NewStore(credsPath)

	client := api.NewClient(cfg.Server.URL, creds, cfg.Server.Timeout, logger)
	sess := session.NewStore(client, creds, logger)
	client.SetUnauthorizedHandler(sess.HandleUnauthorized)

	return &app{
		cfg:    cfg,
		logger: logger,
		closer: closer,
		creds:  creds,
		client: client,
		sess:   sess,
	}, nil
}

func (a *app) close() {
	if a.closer != nil {
		a.closer.Close()
	}
}

// requireAuth gates authenticated subcommands the same way the TUI's guard
// gates screens.
func (a *app) requireAuth() error {
	if !a.sess.Authenticated() {
		return fmt.Errorf("not logged in, run 'pdfbrief login'")
	}
	return nil
}

// detailOrErr prefers the server's structured detail, falling back to the
// raw error for transport failures.
func detailOrErr(err error, fallback string) string {
	if d := api.Detail(err, ""); d != "" {
		return d
	}
	if err != nil {
		return err.Error()
	}
	return fallback
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pdfbrief",
		Short: "Upload PDFs and read their generated summaries",
		Long:  `pdfbrief is a terminal client for the PDF summarization service: upload documents, follow their processing, and read the summaries.`,
		RunE:  runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&serverOverride, "server", "", "Override the service base URL")

	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewRegisterCommand())
	rootCmd.AddCommand(NewLogoutCommand())
	rootCmd.AddCommand(NewWhoamiCommand())
	rootCmd.AddCommand(NewUploadCommand())
	rootCmd.AddCommand(NewDocsCommand())
	rootCmd.AddCommand(NewSummariesCommand())
	rootCmd.AddCommand(NewResendCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := tui.Run(a.sess, a.client, a.cfg.UI.PageSize); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
