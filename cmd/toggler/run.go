package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/jask/toggler/internal/config"
	"github.com/jask/toggler/internal/logging"
	"github.com/jask/toggler/internal/tui"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	model, err := tui.Mount(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer model.Unmount()

	if _, err := tea.NewProgram(model, programOptions(ctx, cfg)...).Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	logger.Info("exited", "state", model.Machine().State())
	return nil
}

// loadConfig reads the config file and applies flag overrides on top.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return config.Config{}, err
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-file") {
		cfg.Log.File = cmd.String("log-file")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func programOptions(ctx context.Context, cfg config.Config) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return opts
}

func initConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		path = cmd.String("config")
	}
	if path == "" {
		def, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = def
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Printf("Wrote default configuration to %s\n", path)
	return nil
}
