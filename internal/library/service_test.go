package library

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazadus/go-playlist/internal/data"
)

// MockStore мок хранилища
type MockStore struct {
	uploadFunc func(ctx context.Context, reader io.Reader, key string) (string, error)
	deleted    []string
	deleteErr  error
}

func (m *MockStore) Upload(ctx context.Context, reader io.Reader, key string) (string, error) {
	return m.uploadFunc(ctx, reader, key)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *MockStore) KeyFromURL(rawURL string) (string, bool) {
	const prefix = "https://storage.example.com/music/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	return strings.TrimPrefix(rawURL, prefix), true
}

// MockDescriber мок для извлечения метаданных
type MockDescriber struct {
	describeFunc func(filePath, url string) (data.Track, error)
}

func (m *MockDescriber) Describe(filePath, url string) (data.Track, error) {
	return m.describeFunc(filePath, url)
}

func describeAs(title string) *MockDescriber {
	return &MockDescriber{
		describeFunc: func(filePath, url string) (data.Track, error) {
			return data.Track{Title: title, Artist: "Test Artist", URL: url, Length: 180, FileSize: 11}, nil
		},
	}
}

func createTestFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("mp3 content"), 0644); err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}
	return path
}

func TestImportWithStore(t *testing.T) {
	path := createTestFile(t, "Test Artist - Test Title.mp3")
	appData := data.NewAppData()

	var uploadedKey, uploadedBody string
	store := &MockStore{
		uploadFunc: func(ctx context.Context, reader io.Reader, key string) (string, error) {
			uploadedKey = key
			body, _ := io.ReadAll(reader)
			uploadedBody = string(body)
			return "https://storage.example.com/music/" + key, nil
		},
	}

	var progress int64
	service := NewService(store, describeAs("Test Title"), appData)
	track, err := service.Import(context.Background(), path, func(n int64) { progress = n })
	if err != nil {
		t.Fatalf("Ошибка импорта: %v", err)
	}

	if uploadedKey != "Test_Artist_-_Test_Title.mp3" {
		t.Errorf("Неожиданный ключ: %s", uploadedKey)
	}
	if uploadedBody != "mp3 content" {
		t.Errorf("Неожиданное содержимое: %q", uploadedBody)
	}
	if progress != int64(len("mp3 content")) {
		t.Errorf("Прогресс должен дойти до размера файла, получено %d", progress)
	}
	if track.URL != "https://storage.example.com/music/Test_Artist_-_Test_Title.mp3" {
		t.Errorf("Неожиданный URL: %s", track.URL)
	}
	if len(appData.Tracks) != 1 || appData.Tracks[0].Title != "Test Title" {
		t.Errorf("Трек должен попасть в каталог: %+v", appData.Tracks)
	}
}

func TestImportWithoutStore(t *testing.T) {
	path := createTestFile(t, "local.mp3")
	appData := data.NewAppData()

	service := NewService(nil, describeAs("Local"), appData)
	if service.HasStore() {
		t.Error("Сервис без хранилища не должен сообщать о его наличии")
	}

	track, err := service.Import(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Ошибка импорта: %v", err)
	}
	if track.URL != "file://"+path {
		t.Errorf("Ожидался file URI, получено: %s", track.URL)
	}
}

func TestImportDuplicateSkipsUpload(t *testing.T) {
	path := createTestFile(t, "dup.mp3")
	appData := data.NewAppData()
	_ = appData.AddTrack(data.Track{Title: "Dup", URL: "x.mp3"})

	store := &MockStore{
		uploadFunc: func(ctx context.Context, reader io.Reader, key string) (string, error) {
			t.Error("Дубликат не должен загружаться")
			return "", nil
		},
	}

	_, err := NewService(store, describeAs("Dup"), appData).Import(context.Background(), path, nil)
	if !errors.Is(err, data.ErrDuplicateTitle) {
		t.Errorf("Ожидалась ErrDuplicateTitle, получено: %v", err)
	}
}

func TestImportErrors(t *testing.T) {
	appData := data.NewAppData()

	_, err := NewService(nil, describeAs("X"), appData).Import(context.Background(), "/non/existent/file.mp3", nil)
	if err == nil || !strings.Contains(err.Error(), "файл не найден") {
		t.Errorf("Неожиданная ошибка для отсутствующего файла: %v", err)
	}

	path := createTestFile(t, "broken.mp3")
	failing := &MockDescriber{
		describeFunc: func(filePath, url string) (data.Track, error) {
			return data.Track{}, errors.New("ошибка получения длительности")
		},
	}
	if _, err := NewService(nil, failing, appData).Import(context.Background(), path, nil); err == nil {
		t.Error("Ожидалась ошибка описания файла")
	}

	store := &MockStore{
		uploadFunc: func(ctx context.Context, reader io.Reader, key string) (string, error) {
			return "", errors.New("upload failed")
		},
	}
	_, err = NewService(store, describeAs("Y"), appData).Import(context.Background(), path, nil)
	if err == nil || !strings.Contains(err.Error(), "ошибка загрузки в S3") {
		t.Errorf("Неожиданная ошибка загрузки: %v", err)
	}
	if len(appData.Tracks) != 0 {
		t.Errorf("При ошибке каталог не должен меняться: %+v", appData.Tracks)
	}
}

func TestRemove(t *testing.T) {
	appData := data.NewAppData()
	_ = appData.AddTrack(data.Track{Title: "Remote", URL: "https://storage.example.com/music/remote.mp3"})
	_ = appData.AddTrack(data.Track{Title: "Demo", URL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3"})

	store := &MockStore{}
	service := NewService(store, describeAs(""), appData)

	if _, err := service.Remove(context.Background(), "Remote"); err != nil {
		t.Fatalf("Ошибка удаления: %v", err)
	}
	if _, err := service.Remove(context.Background(), "Demo"); err != nil {
		t.Fatalf("Ошибка удаления: %v", err)
	}

	if len(store.deleted) != 1 || store.deleted[0] != "remote.mp3" {
		t.Errorf("Удаляться должен только объект из бакета: %v", store.deleted)
	}
	if len(appData.Tracks) != 0 {
		t.Errorf("Каталог должен опустеть: %+v", appData.Tracks)
	}

	if _, err := service.Remove(context.Background(), "Missing"); err == nil {
		t.Error("Ожидалась ошибка для отсутствующего трека")
	}
}

func TestRemoveKeepsTrackOnStoreError(t *testing.T) {
	appData := data.NewAppData()
	_ = appData.AddTrack(data.Track{Title: "Remote", URL: "https://storage.example.com/music/remote.mp3"})

	store := &MockStore{deleteErr: errors.New("access denied")}
	if _, err := NewService(store, describeAs(""), appData).Remove(context.Background(), "Remote"); err == nil {
		t.Fatal("Ожидалась ошибка хранилища")
	}
	if len(appData.Tracks) != 1 {
		t.Error("При ошибке хранилища трек должен остаться в каталоге")
	}
}

func TestObjectKey(t *testing.T) {
	tests := map[string]string{
		"/music/song.mp3":             "song.mp3",
		"/music/Band - Hit!.mp3":      "Band_-_Hit.mp3",
		"/music/Песня.mp3":            "track.mp3",
		"relative/track_01-final.MP3": "track_01-final.mp3",
	}
	for input, expected := range tests {
		if got := ObjectKey(input); got != expected {
			t.Errorf("ObjectKey(%q) = %q, ожидалось %q", input, got, expected)
		}
	}
}
