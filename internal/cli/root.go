// Package cli implements the adminctl command tree. It is the UI
// collaborator of the session core: it validates input before calling
// in, renders errors, and owns the "go log in again" redirect duty.
package cli

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/adminctl/internal/config"
	"github.com/me/adminctl/internal/logging"
	"github.com/me/adminctl/internal/output"
	"github.com/me/adminctl/internal/session"
	"github.com/me/adminctl/internal/validate"
	"github.com/me/adminctl/pkg/adminapi"
)

var (
	flagConfig    string
	flagAPIURL    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string
	flagNoColor   bool

	cfg        *config.Config
	logger     *slog.Logger
	store      *session.Store
	client     *adminapi.Client
	controller *session.Controller
	printer    *output.Printer
	forms      *validate.Validator
)

// NewRootCmd creates the root cobra command for the adminctl CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "adminctl",
		Short: "adminctl — user account administration console",
		Long:  "adminctl manages user accounts against the administration API:\nauthentication, user CRUD, and aggregate statistics.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(flagConfig)
			if err != nil {
				return err
			}

			if flagAPIURL != "" {
				cfg.API.BaseURL = strings.TrimRight(flagAPIURL, "/")
			}
			if flagDebug {
				cfg.Logging.Level = "debug"
			} else if flagLogLevel != "" {
				cfg.Logging.Level = flagLogLevel
			}
			if flagLogFormat != "" {
				cfg.Logging.Format = flagLogFormat
			}

			logger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
			printer = output.NewPrinter(output.ResolveColors(cfg.Output.Colors && !flagNoColor))
			forms = validate.New()

			store = session.NewStore(cfg.State.Dir)
			store.Load()

			apiCfg := adminapi.DefaultConfig().
				WithBaseURL(cfg.API.BaseURL).
				WithTimeout(cfg.API.Timeout)
			client = adminapi.NewClient(apiCfg, store, logger)
			controller = session.NewController(client, store, logger)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.config/adminctl/config.yaml)")
	root.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "API base URL (or ADMINCTL_API_BASE_URL env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")
	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newRegisterCmd(),
		newWhoamiCmd(),
		newSessionCmd(),
		newUsersCmd(),
		newStatsCmd(),
	)

	return root
}

// friendlyErr rewrites core errors for terminal display. The session
// core clears state on expiry; pointing the user back at login is this
// layer's job.
func friendlyErr(err error) error {
	if err == nil {
		return nil
	}
	if adminapi.IsSessionExpired(err) {
		return errSessionExpired
	}
	return err
}
