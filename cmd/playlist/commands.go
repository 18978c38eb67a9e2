package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-playlist/internal/library"
	"github.com/hazadus/go-playlist/internal/metadata"
	"github.com/hazadus/go-playlist/internal/s3"
	"github.com/hazadus/go-playlist/internal/track"
)

// createRootCommand создает корневую команду с настроенными подкомандами.
// Без подкоманды запускается TUI.
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "playlist",
		Short:        "A playlist player for mp3 files from local paths or URLs",
		Long:         `A terminal playlist player: play a catalog of mp3 tracks in order, skip, go back and pause.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.launchTUI()
		},
	}

	rootCmd.AddCommand(app.createTUICommand())
	rootCmd.AddCommand(app.createPlayCommand(ctx))
	rootCmd.AddCommand(app.createListCommand())
	rootCmd.AddCommand(app.createAddCommand(ctx))
	rootCmd.AddCommand(app.createDeleteCommand(ctx))

	return rootCmd
}

// buildSequence строит последовательность воспроизведения из каталога.
// Повторяющиеся названия считаются ошибкой конфигурации.
func (app *Application) buildSequence() (*track.Sequence, error) {
	return track.NewSequence(app.Data.Tracks)
}

// newLibrary создает сервис каталога. Хранилище S3 подключается,
// только если оно настроено.
func (app *Application) newLibrary() (*library.Service, error) {
	extractor := metadata.NewExtractor()
	if !app.Config.HasStorage() {
		return library.NewService(nil, extractor, app.Data), nil
	}

	storage, err := s3.NewStorage(&s3.Config{
		Region:     app.Config.AwsRegion,
		AccessKey:  app.Config.AwsAccessKey,
		SecretKey:  app.Config.AwsSecretKey,
		Endpoint:   app.Config.AwsEndpoint,
		BucketName: app.Config.AwsBucketName,
	})
	if err != nil {
		return nil, err
	}
	return library.NewService(storage, extractor, app.Data), nil
}
