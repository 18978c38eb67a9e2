// Package logging настраивает глобальный логгер zerolog с ротацией файла
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hazadus/go-playlist/internal/data"
)

// Options параметры логирования
type Options struct {
	File       string    // Путь к файлу лога
	Level      string    // debug, info, warn, error
	MaxSizeMB  int       // Размер файла до ротации
	MaxBackups int       // Сколько старых файлов хранить
	Extra      io.Writer // Дополнительный вывод, например stderr
}

// Init направляет глобальный логгер в файл.
// Терминал занят интерфейсом, поэтому по умолчанию в него ничего не пишется.
func Init(opts Options) (io.Closer, error) {
	path, err := data.ExpandPath(opts.File)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории логов: %w", err)
	}

	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 1
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = 2
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}
	writers := []io.Writer{file}
	if opts.Extra != nil {
		writers = append(writers, opts.Extra)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(ParseLevel(opts.Level))
	log.Logger = log.Output(io.MultiWriter(writers...))

	return file, nil
}

// ParseLevel разбирает уровень логирования, неизвестные значения дают info
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return parsed
}
