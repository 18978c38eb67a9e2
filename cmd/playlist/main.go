package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/hazadus/go-playlist/internal/config"
	"github.com/hazadus/go-playlist/internal/data"
	"github.com/hazadus/go-playlist/internal/logging"
)

// Application хранит конфигурацию и каталог, общие для всех команд
type Application struct {
	Config *config.Config
	Data   *data.AppData
}

// SaveData сохраняет каталог в файл из конфигурации
func (app *Application) SaveData() error {
	return app.Data.SaveData(app.Config.CatalogFile)
}

func main() {
	os.Exit(run())
}

func run() int {
	// .env не переопределяет уже заданные переменные окружения
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(config.DefaultPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "❌ Ошибка загрузки конфигурации: %v\n", err)
			return 1
		}
		cfg = config.DefaultConfig()
	}

	logFile, err := logging.Init(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Ошибка настройки логирования: %v\n", err)
		return 1
	}
	defer logFile.Close()

	appData := data.NewAppData()
	if err := appData.LoadData(cfg.CatalogFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Ошибка загрузки каталога: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &Application{
		Config: cfg,
		Data:   appData,
	}

	log.Debug().Str("catalog", cfg.CatalogFile).Int("tracks", len(appData.Tracks)).Msg("приложение запущено")

	if err := app.createRootCommand(ctx).ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("команда завершилась с ошибкой")
		return 1
	}
	return 0
}
