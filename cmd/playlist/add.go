package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-playlist/internal/utils"
)

// createAddCommand создает команду add с привязкой к экземпляру приложения
func (app *Application) createAddCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "add [file path]",
		Short: "Add an mp3 file to the catalog",
		Long:  `Read mp3 metadata, upload the file to S3 storage when it is configured and append the track to the catalog.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Создаем контекст с таймаутом для загрузки (10 минут)
			addCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
			defer cancel()
			return app.addTrack(addCtx, args[0])
		},
	}
}

// addTrack добавляет файл в каталог с отображением прогресса загрузки
func (app *Application) addTrack(ctx context.Context, filePath string) error {
	service, err := app.newLibrary()
	if err != nil {
		return fmt.Errorf("ошибка создания S3 клиента: %w", err)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("ошибка получения информации о файле: %w", err)
	}

	var progress func(int64)
	if service.HasStore() {
		fmt.Printf("📤 Загружаем файл в S3:\n")
		fmt.Printf("   Файл: %s\n", filePath)
		fmt.Printf("   Размер: %s\n", utils.FormatFileSize(info.Size()))
		fmt.Printf("   Бакет: %s\n", app.Config.AwsBucketName)
		fmt.Println()
		progress = uploadProgress(info.Size(), time.Now())
	} else {
		fmt.Printf("📁 Хранилище S3 не настроено, трек будет воспроизводиться из локального файла\n")
	}

	track, err := service.Import(ctx, filePath, progress)
	if progress != nil {
		fmt.Println()
	}
	if err != nil {
		return fmt.Errorf("ошибка добавления трека: %w", err)
	}

	if err := app.SaveData(); err != nil {
		return fmt.Errorf("ошибка сохранения данных: %w", err)
	}

	fmt.Printf("✅ Трек добавлен в каталог:\n")
	fmt.Printf("   Название: %s\n", track.Title)
	fmt.Printf("   Исполнитель: %s\n", track.Artist)
	fmt.Printf("   Альбом: %s\n", track.Album)
	fmt.Printf("   Продолжительность: %s\n", utils.FormatSeconds(track.Length))
	fmt.Printf("   URL: %s\n", track.URL)
	fmt.Printf("\n📦 Каталог сохранен в %s\n", app.Config.CatalogFile)
	return nil
}

// uploadProgress возвращает обработчик, печатающий прогресс загрузки на месте
func uploadProgress(size int64, startTime time.Time) func(int64) {
	return func(bytesRead int64) {
		if bytesRead <= 0 || size <= 0 {
			return
		}
		elapsed := time.Since(startTime)
		percentage := float64(bytesRead) / float64(size) * 100

		speed := float64(bytesRead) / elapsed.Seconds()
		var remainingTime time.Duration
		if speed > 0 {
			remainingTime = time.Duration(float64(size-bytesRead)/speed) * time.Second
		}

		fmt.Printf("\r📊 Прогресс: %.1f%% | Скорость: %s/s | Прошло: %s | Осталось: %s",
			percentage,
			utils.FormatFileSize(int64(speed)),
			utils.FormatDuration(elapsed),
			utils.FormatDuration(remainingTime))
	}
}
