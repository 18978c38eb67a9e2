// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-playlist/internal/player"
	"github.com/hazadus/go-playlist/internal/track"
	"github.com/hazadus/go-playlist/internal/tui/app"
	tuiPlayer "github.com/hazadus/go-playlist/internal/tui/player"
)

// App представляет основное TUI приложение
type App struct {
	seq        *track.Sequence
	bufferSize int
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(seq *track.Sequence, bufferSize int) *App {
	return &App{
		seq:        seq,
		bufferSize: bufferSize,
	}
}

// Run запускает TUI приложение и блокируется до выхода
func (tuiApp *App) Run() error {
	audioPlayer := player.NewPlayer(tuiApp.bufferSize)
	driver := player.NewDriver(audioPlayer)

	model := app.NewMainModel(tuiApp.seq, driver, tuiPlayer.Feed{
		Progress: audioPlayer.Progress(),
		Done:     audioPlayer.Done(),
		Errors:   driver.Errors(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()

	// Закрытый плеер прерывает загрузку и игнорирует оставшиеся команды
	audioPlayer.Close()
	driver.Close()

	return err
}
