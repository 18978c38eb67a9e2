package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hazadus/go-playlist/internal/console"
	"github.com/hazadus/go-playlist/internal/playback"
	"github.com/hazadus/go-playlist/internal/player"
)

// createPlayCommand создает команду play с привязкой к экземпляру приложения
func (app *Application) createPlayCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the catalog in the console",
		Long:  `Play the catalog in order with single-key controls: n next, p previous, space pause, 1-9 select, q quit.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.playConsole(ctx, os.Stdin, os.Stdout)
		},
	}
}

func (app *Application) playConsole(ctx context.Context, in *os.File, out io.Writer) error {
	seq, err := app.buildSequence()
	if err != nil {
		return err
	}

	// Включаем raw режим для чтения одиночных клавиш
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("ошибка перевода терминала в raw режим: %w", err)
		}
		defer term.Restore(fd, oldState)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	audioPlayer := player.NewPlayer(app.Config.BufferSize)
	driver := player.NewDriver(audioPlayer)
	defer func() {
		audioPlayer.Close()
		driver.Close()
	}()

	surface := console.NewSurface(out, driver)
	coordinator := playback.NewCoordinator(seq, surface)

	titles := seq.Titles()
	console.PrintHelp(out, titles)

	events := make(chan playback.Event, 16)
	go func() {
		if err := console.ReadKeys(ctx, in, titles, events); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("ошибка чтения клавиатуры")
		}
		cancel()
	}()
	go forwardPlayerEvents(ctx, audioPlayer, driver.Errors(), surface.Source, events)

	coordinator.Start()
	err = playback.Run(ctx, coordinator, events)

	fmt.Fprint(out, "\r\n⏹️  Воспроизведение остановлено\r\n")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// playerSignals сигналы плеера, которые пересылаются в цикл событий
type playerSignals interface {
	Progress() <-chan player.Status
	Done() <-chan string
}

// forwardPlayerEvents переводит сигналы плеера в события координатора.
// Сигналы от источника, отличного от current(), отбрасываются.
// Ошибки тоже идут через цикл событий, поверхность меняется только там.
func forwardPlayerEvents(ctx context.Context, signals playerSignals, errs <-chan error, current func() string, events chan<- playback.Event) {
	for {
		var ev playback.Event
		select {
		case <-ctx.Done():
			return
		case status := <-signals.Progress():
			if status.Source != current() {
				continue
			}
			ev = playback.ProgressTick(status.Current, status.Total)
		case source := <-signals.Done():
			if source != current() {
				continue
			}
			ev = playback.Ended()
		case err := <-errs:
			ev = playback.Failed(err)
		}

		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}
