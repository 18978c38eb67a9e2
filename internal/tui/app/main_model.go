// Package app содержит основную логику TUI приложения
package app

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/hazadus/go-playlist/internal/playback"
	"github.com/hazadus/go-playlist/internal/track"
	tuiPlayer "github.com/hazadus/go-playlist/internal/tui/player"
	"github.com/hazadus/go-playlist/internal/tui/tracklist"
)

// Audio команды, которые модель передает плееру
type Audio interface {
	SetSource(uri string)
	Play()
	Pause()
}

// MainModel главная модель TUI. Она же поверхность воспроизведения
// для координатора: все вызовы приходят из Update.
type MainModel struct {
	coordinator    *playback.Coordinator
	tracklistModel *tracklist.Model
	playerModel    *tuiPlayer.Model
	audio          Audio
	feed           tuiPlayer.Feed

	paused  bool
	source  string
	pending []tea.Cmd
}

// NewMainModel создает главную модель для последовательности
func NewMainModel(seq *track.Sequence, audio Audio, feed tuiPlayer.Feed) *MainModel {
	m := &MainModel{
		tracklistModel: tracklist.NewModel(seq.Tracks()),
		playerModel:    tuiPlayer.NewModel(),
		audio:          audio,
		feed:           feed,
		paused:         true,
	}
	m.coordinator = playback.NewCoordinator(seq, m)
	return m
}

// Init запускает первый трек и подписку на события плеера
func (m *MainModel) Init() tea.Cmd {
	m.coordinator.Start()
	return tea.Batch(append(m.flush(), m.feed.Listen())...)
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.audio.Pause()
			return m, tea.Quit
		case "n":
			m.dispatch(playback.Next())
		case "p":
			m.dispatch(playback.Previous())
		case " ":
			m.dispatch(playback.TogglePlayPause())
		default:
			m.tracklistModel, cmd = m.tracklistModel.Update(msg)
		}

	case tracklist.TrackSelectedMsg:
		m.dispatch(playback.Select(msg.Title))

	case tuiPlayer.ProgressMsg:
		if msg.Status.Source == m.source {
			m.playerModel.SetStatus(msg.Status)
			m.dispatch(playback.ProgressTick(msg.Status.Current, msg.Status.Total))
		}
		cmd = m.feed.Listen()

	case tuiPlayer.PlaybackFinishedMsg:
		if msg.Source == m.source {
			m.dispatch(playback.Ended())
		}
		cmd = m.feed.Listen()

	case tuiPlayer.PlaybackErrorMsg:
		m.dispatch(playback.Failed(msg.Error))
		cmd = m.feed.Listen()

	case progress.FrameMsg:
		m.playerModel, cmd = m.playerModel.Update(msg)

	case tea.WindowSizeMsg:
		m.playerModel.Update(msg)
		m.tracklistModel.SetSize(msg.Width, max(msg.Height-tuiPlayer.Height, 3))

	default:
		m.tracklistModel, cmd = m.tracklistModel.Update(msg)
	}

	return m, tea.Batch(append(m.flush(), cmd)...)
}

// View отображает интерфейс
func (m *MainModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.tracklistModel.View(),
		m.playerModel.View(),
	)
}

// Coordinator возвращает координатор воспроизведения
func (m *MainModel) Coordinator() *playback.Coordinator {
	return m.coordinator
}

func (m *MainModel) dispatch(ev playback.Event) {
	if err := m.coordinator.Dispatch(ev); err != nil {
		log.Error().Err(err).Msg("ошибка обработки события")
	}
}

// flush забирает команды, накопленные вызовами поверхности
func (m *MainModel) flush() []tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return cmds
}

// SetLabel выводит подпись текущего трека
func (m *MainModel) SetLabel(text string) {
	m.playerModel.SetLabel(text)
}

// SetSource передает источник плееру
func (m *MainModel) SetSource(uri string) {
	m.source = uri
	m.pending = append(m.pending, m.playerModel.Reset())
	m.audio.SetSource(uri)
}

// Play запускает воспроизведение
func (m *MainModel) Play() {
	m.paused = false
	m.audio.Play()
}

// Pause ставит воспроизведение на паузу
func (m *MainModel) Pause() {
	m.paused = true
	m.audio.Pause()
}

// Paused возвращает состояние паузы
func (m *MainModel) Paused() bool {
	return m.paused
}

// SetControlLabel задает подпись кнопки воспроизведения
func (m *MainModel) SetControlLabel(text string) {
	m.playerModel.SetControlLabel(text)
}

// SetActive подсвечивает трек в списке. Курсор списка следует за играющим треком.
func (m *MainModel) SetActive(title string, active bool) {
	m.tracklistModel.SetActive(title, active)
	if active {
		m.tracklistModel.Select(title)
	}
}

// ReportError показывает ошибку воспроизведения на панели
func (m *MainModel) ReportError(err error) {
	m.playerModel.SetError(err)
}

// SetProgress обновляет полосу прогресса
func (m *MainModel) SetProgress(percent float64) {
	m.pending = append(m.pending, m.playerModel.SetPercent(percent))
}
