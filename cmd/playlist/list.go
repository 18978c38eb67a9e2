package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-playlist/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tracks from the catalog",
		Long:  `Display the catalog in playback order.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.listTracks()
		},
	}
}

func (app *Application) listTracks() error {
	if len(app.Data.Tracks) == 0 {
		fmt.Println("📚 Каталог пуст. Добавьте треки с помощью команды 'add'.")
		return nil
	}

	fmt.Printf("📚 Найдено треков: %d\n\n", len(app.Data.Tracks))

	fmt.Printf("%-4s %-30s %-30s %-20s %-12s %-12s\n",
		"#", "Название", "Исполнитель", "Альбом", "Длительность", "Размер")
	fmt.Println(strings.Repeat("-", 112))

	for i, track := range app.Data.Tracks {
		fmt.Printf("%-4d %-30s %-30s %-20s %-12s %-12s\n",
			i+1,
			utils.TruncateString(track.Title, 28),
			utils.TruncateString(track.Artist, 28),
			utils.TruncateString(track.Album, 18),
			utils.FormatSeconds(track.Length),
			utils.FormatFileSize(track.FileSize))
	}
	fmt.Println()

	// Каталог с повторами не воспроизводится
	if _, err := app.buildSequence(); err != nil {
		fmt.Printf("❌ Ошибка каталога: %v\n", err)
		return err
	}

	fmt.Println("💡 Используйте 'playlist play' или 'playlist tui' для воспроизведения")
	return nil
}

