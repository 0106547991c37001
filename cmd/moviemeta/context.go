package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"moviemeta/internal/config"
	"moviemeta/internal/enrich"
	"moviemeta/internal/logging"
	"moviemeta/internal/services"
	"moviemeta/internal/tmdb"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// runContext tags the command context with a fresh run id and the operation
// name so every log line of one invocation can be correlated.
func (c *commandContext) runContext(cmd *cobra.Command, operation string) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = services.WithRunID(ctx, uuid.NewString())
	return services.WithOperation(ctx, operation)
}

type enrichment struct {
	cfg      *config.Config
	logger   *slog.Logger
	resolver *enrich.Resolver
	updater  *enrich.Updater
}

// newEnrichment wires the TMDB client, limiter, and resolver from config.
// Missing credentials only produce a warning: requests are still issued and
// rejected by TMDB.
func (c *commandContext) newEnrichment(ctx context.Context) (*enrichment, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	logger = logging.WithContext(ctx, logger)

	if !cfg.HasCredentials() {
		logging.WarnWithContext(logger, "tmdb credentials not configured", "tmdb_credentials_missing",
			logging.String(logging.FieldErrorHint, "set tmdb.api_key or export TMDB_API_KEY"),
			logging.String(logging.FieldImpact, "TMDB will reject every request"),
		)
	}

	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithBearerToken(cfg.TMDB.BearerToken),
		tmdb.WithTimeout(cfg.RequestTimeout()),
	)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "cli", "tmdb client", "", err)
	}
	resolver := enrich.NewResolverFromConfig(cfg, client, logger)
	return &enrichment{
		cfg:      cfg,
		logger:   logger,
		resolver: resolver,
		updater:  enrich.NewUpdater(resolver, logger),
	}, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
