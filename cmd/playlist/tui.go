package main

import (
	"github.com/spf13/cobra"

	"github.com/hazadus/go-playlist/internal/tui"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch interactive terminal user interface that plays the catalog in order.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.launchTUI()
		},
	}
}

func (app *Application) launchTUI() error {
	seq, err := app.buildSequence()
	if err != nil {
		return err
	}

	return tui.NewApp(seq, app.Config.BufferSize).Run()
}
