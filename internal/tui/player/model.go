// Package player содержит панель текущего трека для TUI
package player

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-playlist/internal/playback"
	"github.com/hazadus/go-playlist/internal/player"
	"github.com/hazadus/go-playlist/internal/streaming"
	"github.com/hazadus/go-playlist/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0000ff"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff0000")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			PaddingTop(1)
)

// Height количество строк, занимаемых панелью
const Height = 8

// ProgressMsg содержит обновления прогресса воспроизведения
type ProgressMsg struct {
	Status player.Status
}

// PlaybackFinishedMsg отправляется, когда источник доигран до конца
type PlaybackFinishedMsg struct {
	Source string
}

// PlaybackErrorMsg отправляется при ошибке воспроизведения
type PlaybackErrorMsg struct {
	Error error
}

// Feed каналы, из которых приходят события плеера
type Feed struct {
	Progress <-chan player.Status
	Done     <-chan string
	Errors   <-chan error
}

// Listen ждет следующее событие плеера
func (f Feed) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case status := <-f.Progress:
			return ProgressMsg{Status: status}
		case source := <-f.Done:
			return PlaybackFinishedMsg{Source: source}
		case err := <-f.Errors:
			return PlaybackErrorMsg{Error: err}
		}
	}
}

// Model панель с подписью, кнопкой воспроизведения и прогрессом
type Model struct {
	label       string
	control     string
	progressBar progress.Model
	percent     float64
	status      player.Status
	err         error
}

// NewModel создает панель в состоянии простоя
func NewModel() *Model {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	return &Model{
		label:       playback.LabelIdle,
		control:     playback.ControlPlay,
		progressBar: prog,
	}
}

// SetLabel задает подпись
func (m *Model) SetLabel(text string) {
	m.label = text
}

// Label возвращает подпись
func (m *Model) Label() string {
	return m.label
}

// SetControlLabel задает подпись кнопки воспроизведения
func (m *Model) SetControlLabel(text string) {
	m.control = text
}

// ControlLabel возвращает подпись кнопки воспроизведения
func (m *Model) ControlLabel() string {
	return m.control
}

// Reset сбрасывает прогресс и ошибку при смене источника
func (m *Model) Reset() tea.Cmd {
	m.status = player.Status{}
	m.err = nil
	return m.SetPercent(0)
}

// SetPercent задает заполнение полосы прогресса в процентах
func (m *Model) SetPercent(percent float64) tea.Cmd {
	m.percent = percent
	return m.progressBar.SetPercent(percent / 100)
}

// Percent возвращает заполнение полосы прогресса в процентах
func (m *Model) Percent() float64 {
	return m.percent
}

// SetStatus запоминает последний статус плеера для вывода времени
func (m *Model) SetStatus(status player.Status) {
	m.status = status
}

// SetError показывает ошибку воспроизведения
func (m *Model) SetError(err error) {
	m.err = err
}

// Err возвращает последнюю ошибку воспроизведения
func (m *Model) Err() error {
	return m.err
}

// Update обрабатывает анимацию прогресса и размеры окна
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progressBar.Width = min(60, msg.Width-10)
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progressBar.Update(msg)
		m.progressBar = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// View отображает панель
func (m *Model) View() string {
	title := titleStyle.Render("🎵 " + m.label)

	timeText := fmt.Sprintf(
		"%s / %s",
		utils.FormatDuration(m.status.Current),
		utils.FormatDuration(m.status.Total),
	)
	if m.status.Current > 0 {
		timeText += "  " + streaming.GetStreamStatus(m.status.StuckCount)
	}

	controls := controlsStyle.Render(fmt.Sprintf(
		"Пробел: %s • n: следующий • p: предыдущий • Enter: выбрать • q: выход",
		m.control,
	))

	view := fmt.Sprintf(
		"%s\n\n%s\n%s\n\n%s",
		title,
		m.progressBar.View(),
		statusStyle.Render(timeText),
		controls,
	)
	if m.err != nil {
		view += "\n" + errorStyle.Render("❌ "+m.err.Error())
	}
	return panelStyle.Render(view)
}
