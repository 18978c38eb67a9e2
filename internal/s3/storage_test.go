package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// MockS3Uploader мок для S3 uploader
type MockS3Uploader struct {
	uploadFunc func(input *s3manager.UploadInput) (*s3manager.UploadOutput, error)
}

func (m *MockS3Uploader) UploadWithContext(ctx context.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	return m.uploadFunc(input)
}

// MockS3Client мок для S3 клиента
type MockS3Client struct {
	deleteObjectFunc func(input *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error)
}

func (m *MockS3Client) DeleteObjectWithContext(ctx context.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error) {
	return m.deleteObjectFunc(input)
}

func testConfig() *Config {
	return &Config{
		Region:     "us-east-1",
		Endpoint:   "https://storage.example.com",
		BucketName: "music",
	}
}

func TestUpload(t *testing.T) {
	var gotInput *s3manager.UploadInput
	var gotBody string
	uploader := &MockS3Uploader{
		uploadFunc: func(input *s3manager.UploadInput) (*s3manager.UploadOutput, error) {
			gotInput = input
			body, _ := io.ReadAll(input.Body)
			gotBody = string(body)
			return &s3manager.UploadOutput{}, nil
		},
	}
	storage := NewStorageWithClients(testConfig(), uploader, &MockS3Client{})

	url, err := storage.Upload(context.Background(), strings.NewReader("mp3 bytes"), "song.mp3")
	if err != nil {
		t.Fatalf("Ошибка загрузки: %v", err)
	}

	if url != "https://storage.example.com/music/song.mp3" {
		t.Errorf("Неожиданный URL: %s", url)
	}
	if aws.StringValue(gotInput.Bucket) != "music" || aws.StringValue(gotInput.Key) != "song.mp3" {
		t.Errorf("Неожиданные параметры загрузки: %s/%s", aws.StringValue(gotInput.Bucket), aws.StringValue(gotInput.Key))
	}
	if aws.StringValue(gotInput.ContentType) != "audio/mpeg" {
		t.Errorf("Неожиданный ContentType: %s", aws.StringValue(gotInput.ContentType))
	}
	if gotBody != "mp3 bytes" {
		t.Errorf("Неожиданное содержимое: %q", gotBody)
	}
}

func TestUploadError(t *testing.T) {
	uploader := &MockS3Uploader{
		uploadFunc: func(input *s3manager.UploadInput) (*s3manager.UploadOutput, error) {
			return nil, awserr.New("AccessDenied", "Access Denied", nil)
		},
	}
	storage := NewStorageWithClients(testConfig(), uploader, &MockS3Client{})

	_, err := storage.Upload(context.Background(), strings.NewReader(""), "song.mp3")
	if err == nil {
		t.Fatal("Ожидалась ошибка загрузки")
	}
	if !strings.Contains(err.Error(), "ошибка загрузки") || !strings.Contains(err.Error(), "AccessDenied") {
		t.Errorf("Неожиданное сообщение об ошибке: %v", err)
	}
	var aerr awserr.Error
	if !errors.As(err, &aerr) || aerr.Code() != "AccessDenied" {
		t.Errorf("Ошибка AWS должна сохраняться в цепочке: %v", err)
	}
}

func TestDelete(t *testing.T) {
	var gotKey string
	client := &MockS3Client{
		deleteObjectFunc: func(input *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
			gotKey = aws.StringValue(input.Key)
			return &s3.DeleteObjectOutput{}, nil
		},
	}
	storage := NewStorageWithClients(testConfig(), &MockS3Uploader{}, client)

	if err := storage.Delete(context.Background(), "song.mp3"); err != nil {
		t.Fatalf("Ошибка удаления: %v", err)
	}
	if gotKey != "song.mp3" {
		t.Errorf("Ожидался ключ song.mp3, получено %s", gotKey)
	}
}

func TestDeleteError(t *testing.T) {
	client := &MockS3Client{
		deleteObjectFunc: func(input *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
			return nil, awserr.New("NoSuchKey", "The specified key does not exist", nil)
		},
	}
	storage := NewStorageWithClients(testConfig(), &MockS3Uploader{}, client)

	err := storage.Delete(context.Background(), "missing.mp3")
	if err == nil || !strings.Contains(err.Error(), "ошибка удаления файла из S3") {
		t.Errorf("Неожиданное сообщение об ошибке: %v", err)
	}
}

func TestObjectURLWithoutEndpoint(t *testing.T) {
	storage := NewStorageWithClients(&Config{Region: "eu-west-1", BucketName: "music"}, nil, nil)

	expected := "https://music.s3.eu-west-1.amazonaws.com/a.mp3"
	if got := storage.ObjectURL("a.mp3"); got != expected {
		t.Errorf("Ожидался %s, получено %s", expected, got)
	}
}

func TestKeyFromURL(t *testing.T) {
	storage := NewStorageWithClients(testConfig(), nil, nil)

	tests := []struct {
		url   string
		key   string
		found bool
	}{
		{"https://storage.example.com/music/song.mp3", "song.mp3", true},
		{"https://storage.example.com/music/Band%20-%20Hit.mp3", "Band - Hit.mp3", true},
		{"https://storage.example.com/other/song.mp3", "", false},
		{"https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3", "", false},
		{"https://storage.example.com/music/", "", false},
	}

	for _, tt := range tests {
		key, found := storage.KeyFromURL(tt.url)
		if key != tt.key || found != tt.found {
			t.Errorf("KeyFromURL(%q) = %q, %v; ожидалось %q, %v", tt.url, key, found, tt.key, tt.found)
		}
	}
}

func TestObjectURLEscapesKey(t *testing.T) {
	storage := NewStorageWithClients(testConfig(), nil, nil)

	u := storage.ObjectURL("Band - Hit.mp3")
	if u != "https://storage.example.com/music/Band%20-%20Hit.mp3" {
		t.Errorf("Неожиданный URL: %s", u)
	}
	if key, ok := storage.KeyFromURL(u); !ok || key != "Band - Hit.mp3" {
		t.Errorf("Ключ должен восстанавливаться из URL, получено %q", key)
	}
}
