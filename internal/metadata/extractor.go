// Package metadata извлекает описание трека из аудиофайла
package metadata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/mp3"

	"github.com/hazadus/go-playlist/internal/data"
)

// Tags теги трека
type Tags struct {
	Artist string
	Title  string
	Album  string
}

// Extractor извлекает теги, длительность и размер из MP3
type Extractor struct{}

// NewExtractor создает новый экстрактор метаданных
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ReadTags читает теги из потока. Пустые поля дополняются из имени источника.
func (e *Extractor) ReadTags(reader io.ReadSeeker, source string) Tags {
	fallback := TagsFromName(source)
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return fallback
	}

	m, err := tag.ReadFrom(reader)
	if err != nil {
		return fallback
	}

	tags := Tags{
		Artist: strings.TrimSpace(m.Artist()),
		Title:  strings.TrimSpace(m.Title()),
		Album:  strings.TrimSpace(m.Album()),
	}
	if tags.Title == "" {
		tags.Title = fallback.Title
	}
	if tags.Artist == "" {
		tags.Artist = fallback.Artist
	}
	return tags
}

// ReadFileTags читает теги из файла
func (e *Extractor) ReadFileTags(filePath string) Tags {
	file, err := os.Open(filePath)
	if err != nil {
		return TagsFromName(filePath)
	}
	defer file.Close()

	return e.ReadTags(file, filePath)
}

// Duration возвращает длительность MP3 файла
func (e *Extractor) Duration(filePath string) (time.Duration, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия файла: %w", err)
	}

	streamer, format, err := mp3.Decode(file)
	if err != nil {
		file.Close()
		return 0, fmt.Errorf("ошибка декодирования MP3: %w", err)
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

// Describe собирает запись каталога для локального файла
func (e *Extractor) Describe(filePath, url string) (data.Track, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return data.Track{}, fmt.Errorf("ошибка получения информации о файле: %w", err)
	}

	duration, err := e.Duration(filePath)
	if err != nil {
		return data.Track{}, fmt.Errorf("ошибка получения длительности: %w", err)
	}

	tags := e.ReadFileTags(filePath)
	return data.Track{
		Title:    tags.Title,
		URL:      url,
		Artist:   tags.Artist,
		Album:    tags.Album,
		Length:   int(duration.Seconds()),
		FileSize: info.Size(),
	}, nil
}

// TagsFromName разбирает имя файла в формате "Artist - Title"
func TagsFromName(source string) Tags {
	fileName := filepath.Base(source)
	nameWithoutExt := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	parts := strings.Split(nameWithoutExt, " - ")
	if len(parts) >= 2 {
		return Tags{
			Artist: strings.TrimSpace(parts[0]),
			Title:  strings.TrimSpace(strings.Join(parts[1:], " - ")),
		}
	}

	return Tags{
		Artist: "Unknown Artist",
		Title:  nameWithoutExt,
	}
}
