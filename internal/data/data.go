// Package data содержит каталог треков и его хранение в YAML-файле
package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrDuplicateTitle возвращается, если в каталоге уже есть трек с таким названием.
// Название служит идентификатором трека при выборе из списка.
var ErrDuplicateTitle = errors.New("дублирующееся название трека")

// Track описывает один трек каталога. Значение неизменяемо после загрузки.
type Track struct {
	Title    string `yaml:"title"`
	URL      string `yaml:"url"` // Источник: http(s) URL, file:// URI или локальный путь
	Artist   string `yaml:"artist,omitempty"`
	Album    string `yaml:"album,omitempty"`
	Length   int    `yaml:"length,omitempty"`    // Длина трека в секундах
	FileSize int64  `yaml:"file_size,omitempty"` // Размер файла в байтах
}

// AppData хранит упорядоченный каталог треков
type AppData struct {
	Tracks []Track `yaml:"tracks"`
}

// NewAppData создает пустой каталог
func NewAppData() *AppData {
	return &AppData{
		Tracks: make([]Track, 0),
	}
}

// DefaultAppData возвращает каталог по умолчанию из пяти демонстрационных треков
func DefaultAppData() *AppData {
	d := NewAppData()
	for i := 1; i <= 5; i++ {
		d.Tracks = append(d.Tracks, Track{
			Title: fmt.Sprintf("Song %d", i),
			URL:   fmt.Sprintf("https://www.soundhelix.com/examples/mp3/SoundHelix-Song-%d.mp3", i),
		})
	}
	return d
}

// ExpandPath раскрывает ~ в начале пути в домашнюю директорию
func ExpandPath(filePath string) (string, error) {
	if !strings.HasPrefix(filePath, "~") {
		return filePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return strings.Replace(filePath, "~", home, 1), nil
}

// LoadData загружает каталог из файла.
// Если файла нет, используется каталог по умолчанию.
func (d *AppData) LoadData(filePath string) error {
	path, err := ExpandPath(filePath)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			*d = *DefaultAppData()
			return nil
		}
		return fmt.Errorf("ошибка чтения файла каталога: %w", err)
	}
	if len(raw) == 0 {
		*d = *NewAppData()
		return nil
	}

	loaded := NewAppData()
	if err := yaml.Unmarshal(raw, loaded); err != nil {
		return fmt.Errorf("ошибка разбора каталога: %w", err)
	}
	*d = *loaded
	return nil
}

// SaveData сохраняет каталог в файл, создавая директорию при необходимости
func (d *AppData) SaveData(filePath string) error {
	path, err := ExpandPath(filePath)
	if err != nil {
		return err
	}

	raw, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("ошибка сериализации каталога: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("ошибка создания директории каталога: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла каталога: %w", err)
	}
	return nil
}

// AddTrack добавляет трек в конец каталога
func (d *AppData) AddTrack(track Track) error {
	if _, err := d.TrackByTitle(track.Title); err == nil {
		return fmt.Errorf("%w: %q", ErrDuplicateTitle, track.Title)
	}
	d.Tracks = append(d.Tracks, track)
	return nil
}

// TrackByTitle возвращает трек по названию
func (d *AppData) TrackByTitle(title string) (*Track, error) {
	for i := range d.Tracks {
		if d.Tracks[i].Title == title {
			return &d.Tracks[i], nil
		}
	}
	return nil, fmt.Errorf("трек %q не найден", title)
}

// DeleteTrackByTitle удаляет трек по названию, сохраняя порядок остальных
func (d *AppData) DeleteTrackByTitle(title string) error {
	for i := range d.Tracks {
		if d.Tracks[i].Title == title {
			d.Tracks = append(d.Tracks[:i], d.Tracks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("трек %q не найден", title)
}
