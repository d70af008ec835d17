package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"amendo/internal/config"
	"amendo/internal/ledger"
	"amendo/internal/logging"
	"amendo/internal/services"
	"amendo/internal/services/amendo"
	"amendo/internal/ticket"
	"amendo/internal/ticketfile"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	store *ledger.Store
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
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "ensure directories", "", err)
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// loggerValue falls back to a no-op logger when the configured sinks cannot
// be opened; commands still report their own errors on stderr.
func (c *commandContext) loggerValue() *slog.Logger {
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

func (c *commandContext) client() (*amendo.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return amendo.NewClient(amendo.ConfigFrom(cfg), amendo.WithLogger(c.loggerValue())), nil
}

func (c *commandContext) openLedger() (*ledger.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := ledger.Open(cfg)
	if err != nil {
		return nil, err
	}
	c.store = store
	return store, nil
}

// loadTicket compiles a ticket definition using the configured client ID and
// fallback assembly line.
func (c *commandContext) loadTicket(path string) (*ticketfile.Definition, *ticket.SimpleJobTicket, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	def, err := ticketfile.Load(path, ticketfile.WithDefaultAssemblyLine(cfg.Amendo.AssemblyLine))
	if err != nil {
		return nil, nil, err
	}
	job, err := def.Build(ticket.WithClientID(cfg.Client.ID))
	if err != nil {
		return nil, nil, err
	}
	return def, job, nil
}

func (c *commandContext) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
