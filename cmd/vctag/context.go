package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"vctag/internal/config"
	"vctag/internal/editor"
	"vctag/internal/history"
	"vctag/internal/logging"
	"vctag/internal/services/vorbiscomment"
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

func (c *commandContext) newClient() (*vorbiscomment.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return vorbiscomment.New(
		vorbiscomment.WithBinary(cfg.Tool.Binary),
		vorbiscomment.WithTimeout(cfg.ToolTimeout()),
	), nil
}

// newEditor assembles an editor session from configuration. The returned
// cleanup closes the history store when one was opened.
func (c *commandContext) newEditor(path string) (*editor.Editor, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	client, err := c.newClient()
	if err != nil {
		return nil, nil, err
	}

	opts := []editor.Option{
		editor.WithClient(client),
		editor.WithLogger(logger),
		editor.WithLockTimeout(cfg.LockTimeout()),
	}
	cleanup := func() {}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, editor.WithHistory(store))
		cleanup = func() {
			_ = store.Close()
		}
	}

	return editor.New(path, opts...), cleanup, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
