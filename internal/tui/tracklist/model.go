// Package tracklist содержит модель списка треков для TUI
package tracklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-playlist/internal/data"
	"github.com/hazadus/go-playlist/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	activeItemStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
)

const activeMarker = "♪ "

// TrackSelectedMsg отправляется при выборе трека клавишей Enter
type TrackSelectedMsg struct {
	Title string
}

// trackItem реализует интерфейс list.Item для трека
type trackItem struct {
	track data.Track
}

func (i trackItem) FilterValue() string {
	return i.track.Title
}

// trackItemDelegate отображает строку трека и отмечает играющий
type trackItemDelegate struct {
	active map[string]bool
}

func (d trackItemDelegate) Height() int                             { return 1 }
func (d trackItemDelegate) Spacing() int                            { return 0 }
func (d trackItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d trackItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(trackItem)
	if !ok {
		return
	}

	marker := "  "
	if d.active[i.track.Title] {
		marker = activeMarker
	}
	str := fmt.Sprintf("%s%-3d %-40s %-20s %s",
		marker,
		index+1,
		utils.TruncateString(i.track.Title, 40),
		utils.TruncateString(i.track.Artist, 20),
		utils.FormatSeconds(i.track.Length))

	if d.active[i.track.Title] {
		str = activeItemStyle.Render(str)
	}

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// Model представляет модель списка треков
type Model struct {
	list   list.Model
	active map[string]bool
}

// NewModel создает модель списка в порядке последовательности
func NewModel(tracks []data.Track) *Model {
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{track: t}
	}

	active := make(map[string]bool)
	l := list.New(items, trackItemDelegate{active: active}, 0, 0)
	l.Title = "Плейлист"
	l.SetShowStatusBar(false)
	l.SetShowTitle(true)
	// Фильтр отключен: буквы n и p заняты навигацией по плейлисту
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return &Model{
		list:   l,
		active: active,
	}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// SetActive включает или снимает подсветку трека
func (m *Model) SetActive(title string, active bool) {
	if active {
		m.active[title] = true
		return
	}
	delete(m.active, title)
}

// IsActive сообщает, подсвечен ли трек
func (m *Model) IsActive(title string) bool {
	return m.active[title]
}

// SetSize задает размеры списка
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Select переводит курсор списка на трек с указанным названием
func (m *Model) Select(title string) {
	for i, item := range m.list.Items() {
		if t, ok := item.(trackItem); ok && t.track.Title == title {
			m.list.Select(i)
			return
		}
	}
}

// SelectedTitle возвращает название трека под курсором списка
func (m *Model) SelectedTitle() (string, bool) {
	item, ok := m.list.SelectedItem().(trackItem)
	if !ok {
		return "", false
	}
	return item.track.Title, true
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		if title, ok := m.SelectedTitle(); ok {
			return m, func() tea.Msg {
				return TrackSelectedMsg{Title: title}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	return m.list.View()
}
