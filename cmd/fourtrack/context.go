package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"fourtrack/internal/config"
	"fourtrack/internal/editor"
	"fourtrack/internal/logging"
	"fourtrack/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
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

// withStore opens the project store for the duration of fn.
func (c *commandContext) withStore(fn func(*config.Config, *store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open project store: %w", err)
	}
	defer st.Close()
	return fn(cfg, st)
}

// withEditor loads the identified session into an editor for the duration
// of fn. Persistence happens through the editor's own methods.
func (c *commandContext) withEditor(ctx context.Context, sessionID int64, fn func(*editor.Editor) error) error {
	return c.withStore(func(cfg *config.Config, st *store.Store) error {
		sess, err := st.LoadSession(ctx, sessionID)
		if err != nil {
			return err
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("initialize logging: %w", err)
		}
		ed := editor.New(cfg, st, sessionID, sess, editor.WithLogger(logger))
		defer ed.Close()
		return fn(ed)
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
