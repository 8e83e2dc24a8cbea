package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/run"

	"github.com/andornaut/filectrl/internal/backend"
	"github.com/andornaut/filectrl/internal/command"
	"github.com/andornaut/filectrl/internal/engine"
	"github.com/andornaut/filectrl/internal/fsys"
	"github.com/andornaut/filectrl/internal/ui"
)

// busCapacity bounds the number of commands queued between frames.
const busCapacity = 256

// Config describes user-provided application options.
type Config struct {
	StartDir      string
	MinBuffer     uint64
	MaxBuffer     uint64
	FrameInterval time.Duration
	WatchInterval time.Duration
	Opener        string
	ShowHidden    bool
}

// Run bootstraps the task engine, directory watcher and Bubble Tea program
// and blocks until the program exits or ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	bus := command.NewBus(busCapacity)
	eng, err := engine.New(engine.Config{
		FS:        fsys.OS{},
		Sender:    bus.Sender(),
		MinBuffer: cfg.MinBuffer,
		MaxBuffer: cfg.MaxBuffer,
	})
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	watcher, err := backend.NewWatcher(bus.Sender(), cfg.WatchInterval)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	model, err := ui.NewModel(ui.Options{
		Bus:           bus,
		FS:            fsys.OS{},
		Engine:        eng,
		Watcher:       watcher,
		StartDir:      cfg.StartDir,
		Opener:        cfg.Opener,
		ShowHidden:    cfg.ShowHidden,
		FrameInterval: cfg.FrameInterval,
	})
	if err != nil {
		return fmt.Errorf("create model: %w", err)
	}
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	var g run.Group

	// Directory watcher.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				return watcher.Run(ctx)
			},
			func(_ error) {
				cancel()
			},
		)
	}

	// Terminal UI.
	{
		g.Add(
			func() error {
				_, err := program.Run()
				if errors.Is(err, tea.ErrProgramKilled) {
					return nil
				}
				if err != nil {
					return err
				}
				return model.Err()
			},
			func(_ error) {
				program.Quit()
			},
		)
	}

	return g.Run()
}
