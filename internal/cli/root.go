// Package cli defines the cobra command tree for rentivo.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentivo/internal/app"
	"github.com/evcraddock/rentivo/internal/config"
	"github.com/evcraddock/rentivo/internal/db"
	"github.com/evcraddock/rentivo/internal/genai"
	"github.com/evcraddock/rentivo/internal/logging"
	"github.com/evcraddock/rentivo/internal/storage"
)

var (
	flagFormat    string
	flagConfig    string
	flagEphemeral bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rentivo",
		Short:         "Browse and list rental homes",
		Long:          "A rental marketplace. Browse and filter listings, sign in as a renter or landlord, send and answer inquiries, and serve the same state over a JSON API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ./rentivo.yaml when present)")
	root.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "keep session and inquiries in memory only")

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newLocationsCmd(),
		newCreateCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newProfileCmd(),
		newAvatarCmd(),
		newInquireCmd(),
		newInquiriesCmd(),
		newDecideCmd(),
		newDashboardCmd(),
		newDescribeCmd(),
		newAnalyzeCmd(),
		newBannerCmd(),
		newServeCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// env is what a command needs to run against the application state.
type env struct {
	cfg   *config.Config
	app   *app.App
	close func()
}

// loadConfig reads settings and sets up logging on stderr.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if err := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openEnv loads the config, opens local storage and restores the app.
// Callers must call close when done.
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	assistant, err := newAssistant(ctx, cfg.GenAI)
	if err != nil {
		closeStore()
		return nil, err
	}

	a, err := app.New(ctx, app.Options{Storage: store, Assistant: assistant})
	if err != nil {
		closeStore()
		return nil, err
	}
	return &env{cfg: cfg, app: a, close: closeStore}, nil
}

// openStorage picks the local-storage backend named by the config.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	driver := cfg.Storage.Driver
	if flagEphemeral {
		driver = config.DriverMemory
	}

	switch driver {
	case config.DriverMemory:
		return storage.NewMemory(), func() {}, nil
	case config.DriverRedis:
		rc, err := storage.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			if err := rc.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: closing redis: %v\n", err)
			}
		}
		return storage.NewRedis(rc, cfg.Redis.Prefix), closer, nil
	default:
		path := cfg.Storage.Path
		if path == "" {
			var err error
			path, err = db.DefaultPath()
			if err != nil {
				return nil, nil, err
			}
		}
		database, err := db.Open(path)
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			if err := database.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
			}
		}
		return storage.NewSQLite(database), closer, nil
	}
}

// newAssistant returns nil without an API key, which makes the app answer
// every AI request with its fallback.
func newAssistant(ctx context.Context, cfg config.GenAI) (*genai.Assistant, error) {
	if cfg.APIKey == "" {
		slog.Debug("no genai API key, AI helpers will use fallbacks")
		return nil, nil
	}
	c, err := genai.NewClient(ctx, cfg.APIKey, genai.ClientOptions{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
	if err != nil {
		return nil, err
	}
	return genai.NewAssistant(c, cfg.TextModel, cfg.ImageModel), nil
}

// withApp runs fn against a freshly restored app and closes storage after.
func withApp(cmd *cobra.Command, fn func(a *app.App, out io.Writer) error) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.close()
	return fn(e.app, cmd.OutOrStdout())
}
