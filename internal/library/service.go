// Package library добавляет треки в каталог и удаляет их оттуда
package library

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hazadus/go-playlist/internal/data"
)

// Store хранилище аудиофайлов
type Store interface {
	Upload(ctx context.Context, reader io.Reader, key string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(rawURL string) (string, bool)
}

// Describer собирает запись каталога по локальному файлу
type Describer interface {
	Describe(filePath, url string) (data.Track, error)
}

// Service управляет добавлением и удалением треков каталога.
// Без хранилища треки добавляются как локальные файлы.
type Service struct {
	store     Store
	describer Describer
	appData   *data.AppData
}

// NewService создает сервис каталога. store может быть nil.
func NewService(store Store, describer Describer, appData *data.AppData) *Service {
	return &Service{
		store:     store,
		describer: describer,
		appData:   appData,
	}
}

// HasStore сообщает, подключено ли хранилище
func (s *Service) HasStore() bool {
	return s.store != nil
}

// Import описывает файл, загружает его в хранилище и добавляет в каталог.
// Если хранилища нет, в каталог попадает file:// URI.
func (s *Service) Import(ctx context.Context, filePath string, progressCallback func(int64)) (data.Track, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return data.Track{}, fmt.Errorf("ошибка получения пути: %w", err)
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		return data.Track{}, fmt.Errorf("файл не найден: %s", filePath)
	}

	localURL := (&url.URL{Scheme: "file", Path: abs}).String()
	track, err := s.describer.Describe(abs, localURL)
	if err != nil {
		return data.Track{}, err
	}
	if _, err := s.appData.TrackByTitle(track.Title); err == nil {
		return data.Track{}, fmt.Errorf("%w: %q", data.ErrDuplicateTitle, track.Title)
	}

	if s.store != nil {
		remoteURL, err := s.upload(ctx, abs, track.FileSize, progressCallback)
		if err != nil {
			return data.Track{}, err
		}
		track.URL = remoteURL
	}

	if err := s.appData.AddTrack(track); err != nil {
		return data.Track{}, err
	}
	log.Info().Str("title", track.Title).Str("url", track.URL).Msg("трек добавлен")
	return track, nil
}

func (s *Service) upload(ctx context.Context, filePath string, size int64, progressCallback func(int64)) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if progressCallback != nil {
		reader = &ProgressReader{
			Reader:     file,
			Size:       size,
			OnProgress: progressCallback,
		}
	}

	remoteURL, err := s.store.Upload(ctx, reader, ObjectKey(filePath))
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки в S3: %w", err)
	}
	return remoteURL, nil
}

// Remove удаляет трек из каталога и его объект из хранилища
func (s *Service) Remove(ctx context.Context, title string) (data.Track, error) {
	found, err := s.appData.TrackByTitle(title)
	if err != nil {
		return data.Track{}, err
	}
	track := *found

	if s.store != nil {
		if key, ok := s.store.KeyFromURL(track.URL); ok {
			if err := s.store.Delete(ctx, key); err != nil {
				return data.Track{}, err
			}
		}
	}

	if err := s.appData.DeleteTrackByTitle(title); err != nil {
		return data.Track{}, err
	}
	log.Info().Str("title", title).Msg("трек удален")
	return track, nil
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectKey формирует ключ объекта из имени файла
func ObjectKey(filePath string) string {
	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	name = strings.Trim(unsafeKeyChars.ReplaceAllString(name, "_"), "_")
	if name == "" {
		name = "track"
	}
	return name + ".mp3"
}

// ProgressReader структура для отслеживания прогресса чтения
type ProgressReader struct {
	io.Reader
	Size       int64
	OnProgress func(int64)
	bytesRead  int64
}

func (pr *ProgressReader) Read(p []byte) (n int, err error) {
	n, err = pr.Reader.Read(p)
	pr.bytesRead += int64(n)
	if pr.OnProgress != nil {
		pr.OnProgress(pr.bytesRead)
	}
	return n, err
}
