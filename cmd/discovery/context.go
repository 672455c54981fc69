package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"discovery/internal/backup"
	"discovery/internal/config"
	"discovery/internal/logging"
	"discovery/internal/recon"
	"discovery/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// withStore opens the catalog store for the duration of fn. The store holds
// the single-writer lock, so commands open late and close eagerly.
func (c *commandContext) withStore(fn func(cfg *config.Config, st *store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(cfg, st)
}

// withSession opens the store and wires a reconciliation session over it.
func (c *commandContext) withSession(fn func(cfg *config.Config, st *store.Store, session *recon.Session) error) error {
	return c.withStore(func(cfg *config.Config, st *store.Store) error {
		session := recon.NewSession(st, cfg.Matching, c.ensureLogger())
		return fn(cfg, st, session)
	})
}

func (c *commandContext) backupManager(cfg *config.Config) *backup.Manager {
	return backup.NewManager(cfg.DatabasePath(), cfg.Paths.BackupDir, cfg.Backups.Retention, c.ensureLogger())
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
