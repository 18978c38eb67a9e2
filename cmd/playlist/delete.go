package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// createDeleteCommand создает команду delete с привязкой к экземпляру приложения
func (app *Application) createDeleteCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [title]",
		Short: "Delete a track by title",
		Long:  `Delete a track from the catalog by its title. The S3 object is removed as well when the track URL points into the bucket.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.deleteTrack(ctx, args[0])
		},
	}
}

func (app *Application) deleteTrack(ctx context.Context, title string) error {
	track, err := app.Data.TrackByTitle(title)
	if err != nil {
		return err
	}

	fmt.Printf("🗑️  Удаляем трек: %s - %s\n", track.Artist, track.Title)

	service, err := app.newLibrary()
	if err != nil {
		fmt.Printf("⚠️  Предупреждение: хранилище S3 недоступно: %v\n", err)
		// Без хранилища удаляем только запись каталога
		if err := app.Data.DeleteTrackByTitle(title); err != nil {
			return fmt.Errorf("ошибка удаления трека из данных: %w", err)
		}
	} else if _, err := service.Remove(ctx, title); err != nil {
		return fmt.Errorf("ошибка удаления трека: %w", err)
	}

	if err := app.SaveData(); err != nil {
		return fmt.Errorf("ошибка сохранения данных: %w", err)
	}

	fmt.Println("✅ Трек успешно удален из каталога")
	return nil
}
