package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/openbadger/badgekit/pkg/apiclient"
	"github.com/openbadger/badgekit/pkg/config"
	"github.com/openbadger/badgekit/pkg/logger"
	"github.com/openbadger/badgekit/pkg/session"
)

const version = "0.3.0"

// errSessionExpired is returned when a screen signals the unauthenticated
// redirect; the stored session has already been cleared at that point.
var errSessionExpired = errors.New("session expired; run `badgectl login` again")

// fileConfig is the optional on-disk configuration. Values set here override
// the environment; flags override both.
type fileConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	SessionDir string        `yaml:"session_dir"`
	ShareBase  string        `yaml:"share_base"`
}

type app struct {
	client    *apiclient.Client
	store     session.Store
	log       *slog.Logger
	shareBase string
}

func newRootCmd() *cobra.Command {
	var (
		flagBaseURL string
		flagConfig  string
		flagVerbose bool
	)

	application := &app{}

	root := &cobra.Command{
		Use:           "badgectl",
		Short:         "Browse and manage your badge profile from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if flagVerbose {
				level = slog.LevelDebug
			}
			application.log = logger.New(logger.WithLevel(level))

			var apiCfg apiclient.Config
			if err := config.Load(&apiCfg); err != nil {
				return err
			}
			var sessCfg session.Config
			if err := config.Load(&sessCfg); err != nil {
				return err
			}

			fileCfg, err := loadFileConfig(flagConfig)
			if err != nil {
				return err
			}
			if fileCfg.BaseURL != "" {
				apiCfg.BaseURL = fileCfg.BaseURL
			}
			if fileCfg.Timeout > 0 {
				apiCfg.Timeout = fileCfg.Timeout
			}
			if fileCfg.SessionDir != "" {
				sessCfg.Dir = fileCfg.SessionDir
			}
			if flagBaseURL != "" {
				apiCfg.BaseURL = flagBaseURL
			}

			application.shareBase = fileCfg.ShareBase
			if application.shareBase == "" {
				application.shareBase = "https://profile.deepcytes.io"
			}

			application.client = apiclient.NewFromConfig(apiCfg, apiclient.WithLogger(application.log))
			store, err := session.NewFileStore(sessCfg.Dir)
			if err != nil {
				return err
			}
			application.store = store
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flagBaseURL, "api", "", "API base URL (overrides config and environment)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default ~/.config/badgectl/config.yaml)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newLoginCmd(application),
		newLogoutCmd(application),
		newRegisterCmd(application),
		newResetPasswordCmd(application),
		newBadgesCmd(application),
		newBadgeCmd(application),
		newProfileCmd(application),
	)
	return root
}

// loadFileConfig reads the YAML config file. A missing default file is fine;
// a missing explicitly requested file is an error.
func loadFileConfig(path string) (fileConfig, error) {
	explicit := path != ""
	if !explicit {
		base, err := os.UserConfigDir()
		if err != nil {
			return fileConfig{}, nil
		}
		path = filepath.Join(base, "badgectl", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return fileConfig{}, nil
	}
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// clearOnUnauthorized enforces the 401 contract for API calls made outside
// the screen models: a rejected token is cleared from the store before the
// error is reported.
func (a *app) clearOnUnauthorized(cmd *cobra.Command, err error) error {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		_ = a.store.Clear(cmd.Context())
		return errSessionExpired
	}
	return err
}

// requireSession returns the stored session or an error telling the user to
// log in first.
func (a *app) requireSession(cmd *cobra.Command) (session.Session, error) {
	sess, err := a.store.Get(cmd.Context())
	if err != nil {
		return session.Session{}, err
	}
	if !sess.IsAuthenticated() {
		return session.Session{}, errors.New("not logged in; run `badgectl login` first")
	}
	return sess, nil
}
