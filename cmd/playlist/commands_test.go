package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazadus/go-playlist/internal/config"
	"github.com/hazadus/go-playlist/internal/data"
)

// captureOutput перехватывает stdout и stderr во время выполнения функции
func captureOutput(t *testing.T, fn func()) string {
	oldStdout := os.Stdout
	oldStderr := os.Stderr

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Ошибка создания pipe: %v", err)
	}

	os.Stdout = w
	os.Stderr = w

	// Читаем параллельно, чтобы большой вывод не заблокировал pipe
	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	os.Stdout = oldStdout
	os.Stderr = oldStderr
	w.Close()

	return <-done
}

// createTestApplication создает тестовое приложение с временными данными
func createTestApplication(t *testing.T, tempDir string) *Application {
	t.Helper()

	// Хранилище S3 не настроено
	testConfig := &config.Config{
		CatalogFile: filepath.Join(tempDir, "catalog.yaml"),
		LogFile:     filepath.Join(tempDir, "playlist.log"),
		LogLevel:    "info",
		BufferSize:  64 * 1024,
	}

	return &Application{
		Config: testConfig,
		Data:   data.NewAppData(),
	}
}

func addTestTracks(t *testing.T, app *Application, titles ...string) {
	t.Helper()
	for _, title := range titles {
		err := app.Data.AddTrack(data.Track{
			Title:  title,
			Artist: "Artist " + title,
			URL:    "https://example.com/" + title + ".mp3",
		})
		if err != nil {
			t.Fatalf("Ошибка добавления трека: %v", err)
		}
	}
}

// TestCmdList проверяет, что команда `list` выводит каталог по порядку
func TestCmdList(t *testing.T) {
	app := createTestApplication(t, t.TempDir())
	if err := app.Data.AddTrack(data.Track{
		Artist:   "Test Artist",
		Title:    "Test Title",
		Album:    "Test Album",
		Length:   180,
		FileSize: 1024000,
		URL:      "https://s3.example.com/test.mp3",
	}); err != nil {
		t.Fatalf("Ошибка добавления трека: %v", err)
	}
	addTestTracks(t, app, "Second")

	listCmd := app.createListCommand()
	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	for _, expected := range []string{"📚 Найдено треков: 2", "Test Artist", "Test Title", "Test Album", "3:00"} {
		if !strings.Contains(output, expected) {
			t.Errorf("Вывод команды list не содержит ожидаемую строку '%s': %s", expected, output)
		}
	}
	if strings.Index(output, "Test Title") > strings.Index(output, "Second") {
		t.Errorf("Треки должны выводиться в порядке каталога: %s", output)
	}
}

// TestCmdListEmpty проверяет, что команда `list` корректно обрабатывает пустой каталог
func TestCmdListEmpty(t *testing.T) {
	app := createTestApplication(t, t.TempDir())

	listCmd := app.createListCommand()
	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	if !strings.Contains(output, "📚 Каталог пуст") {
		t.Errorf("Команда list не отобразила сообщение о пустом каталоге: %s", output)
	}
}

// TestCmdListDuplicates проверяет, что повтор названия считается ошибкой каталога
func TestCmdListDuplicates(t *testing.T) {
	app := createTestApplication(t, t.TempDir())
	// Файл каталога мог быть отредактирован вручную
	app.Data.Tracks = []data.Track{
		{Title: "Song 1", URL: "a.mp3"},
		{Title: "Song 1", URL: "b.mp3"},
	}

	listCmd := app.createListCommand()
	listCmd.SilenceUsage = true
	listCmd.SilenceErrors = true

	var err error
	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{})
		err = listCmd.Execute()
	})

	if !errors.Is(err, data.ErrDuplicateTitle) {
		t.Errorf("Ожидалась ошибка повтора названия, получено %v", err)
	}
	if !strings.Contains(output, "❌ Ошибка каталога") {
		t.Errorf("Команда list не сообщила о повторе: %s", output)
	}
}

// TestBuildSequence проверяет построение последовательности из каталога
func TestBuildSequence(t *testing.T) {
	app := createTestApplication(t, t.TempDir())
	addTestTracks(t, app, "Song 1", "Song 2")

	seq, err := app.buildSequence()
	if err != nil {
		t.Fatalf("Ошибка построения последовательности: %v", err)
	}
	if cur, ok := seq.Current(); !ok || cur.Title != "Song 1" {
		t.Errorf("Ожидался Song 1, получено %+v", cur)
	}

	app.Data.Tracks = append(app.Data.Tracks, data.Track{Title: "Song 2"})
	if _, err := app.buildSequence(); !errors.Is(err, data.ErrDuplicateTitle) {
		t.Errorf("Ожидалась ошибка повтора названия, получено %v", err)
	}
}

// TestCmdDelete проверяет, что команда `delete` удаляет указанный трек и сохраняет каталог
func TestCmdDelete(t *testing.T) {
	app := createTestApplication(t, t.TempDir())
	addTestTracks(t, app, "Title 1", "Title 2")

	deleteCmd := app.createDeleteCommand(context.Background())
	output := captureOutput(t, func() {
		deleteCmd.SetArgs([]string{"Title 1"})
		if err := deleteCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды delete: %v", err)
		}
	})

	if !strings.Contains(output, "🗑️  Удаляем трек: Artist Title 1 - Title 1") {
		t.Errorf("Команда delete не отобразила ожидаемый вывод: %s", output)
	}
	if len(app.Data.Tracks) != 1 || app.Data.Tracks[0].Title != "Title 2" {
		t.Errorf("Ожидался только Title 2 после удаления, получено %+v", app.Data.Tracks)
	}

	saved := data.NewAppData()
	if err := saved.LoadData(app.Config.CatalogFile); err != nil {
		t.Fatalf("Ошибка загрузки сохраненного каталога: %v", err)
	}
	if len(saved.Tracks) != 1 || saved.Tracks[0].Title != "Title 2" {
		t.Errorf("Сохраненный каталог не совпадает: %+v", saved.Tracks)
	}
}

// TestCmdDeleteUnknownTitle проверяет, что неизвестное название завершает команду с ошибкой
func TestCmdDeleteUnknownTitle(t *testing.T) {
	app := createTestApplication(t, t.TempDir())
	addTestTracks(t, app, "Title 1")

	deleteCmd := app.createDeleteCommand(context.Background())
	var buf bytes.Buffer
	deleteCmd.SetOut(&buf)
	deleteCmd.SetErr(&buf)
	deleteCmd.SetArgs([]string{"Missing"})

	err := deleteCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "не найден") {
		t.Errorf("Ожидалась ошибка для неизвестного названия, получено %v", err)
	}
	if len(app.Data.Tracks) != 1 {
		t.Errorf("Каталог не должен измениться, получено %d треков", len(app.Data.Tracks))
	}
	if _, statErr := os.Stat(app.Config.CatalogFile); !os.IsNotExist(statErr) {
		t.Error("Каталог не должен сохраняться при ошибке")
	}
}

// TestCmdAddInvalidArgs проверяет обработку неверных аргументов в команде add
func TestCmdAddInvalidArgs(t *testing.T) {
	app := createTestApplication(t, t.TempDir())
	addCmd := app.createAddCommand(context.Background())

	var buf bytes.Buffer
	addCmd.SetOut(&buf)
	addCmd.SetErr(&buf)
	addCmd.SetArgs([]string{})

	if err := addCmd.Execute(); err == nil {
		t.Error("Ожидалась ошибка при выполнении команды add без аргументов")
	}

	output := buf.String()
	if !strings.Contains(output, "accepts 1 arg") {
		t.Errorf("Команда add не отобразила ошибку о неверных аргументах: %s", output)
	}
}

// TestCmdAddNotMP3 проверяет, что файл, который не декодируется, не попадает в каталог
func TestCmdAddNotMP3(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	filePath := filepath.Join(tempDir, "Artist - Broken.mp3")
	if err := os.WriteFile(filePath, []byte("not an mp3"), 0644); err != nil {
		t.Fatalf("Ошибка создания файла: %v", err)
	}

	var err error
	captureOutput(t, func() {
		err = app.addTrack(context.Background(), filePath)
	})

	if err == nil || !strings.Contains(err.Error(), "ошибка добавления трека") {
		t.Errorf("Ожидалась ошибка добавления трека, получено %v", err)
	}
	if len(app.Data.Tracks) != 0 {
		t.Errorf("Каталог должен остаться пустым, получено %d треков", len(app.Data.Tracks))
	}
	if _, statErr := os.Stat(app.Config.CatalogFile); !os.IsNotExist(statErr) {
		t.Error("Каталог не должен сохраняться при ошибке")
	}
}

// TestCmdAddMissingFile проверяет ошибку для несуществующего файла
func TestCmdAddMissingFile(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	err := app.addTrack(context.Background(), filepath.Join(tempDir, "missing.mp3"))
	if err == nil || !strings.Contains(err.Error(), "ошибка получения информации о файле") {
		t.Errorf("Ожидалась ошибка отсутствующего файла, получено %v", err)
	}
}

// TestRootCommand проверяет набор подкоманд
func TestRootCommand(t *testing.T) {
	app := createTestApplication(t, t.TempDir())
	rootCmd := app.createRootCommand(context.Background())

	for _, name := range []string{"tui", "play", "list", "add", "delete"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Подкоманда %s не найдена: %v", name, err)
		}
	}
}
