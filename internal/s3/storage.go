// Package s3 хранит аудиофайлы каталога в Amazon S3 или совместимом хранилище
package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Config содержит настройки для S3
type Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	BucketName string
}

// UploadAPI часть s3manager.Uploader, используемая хранилищем
type UploadAPI interface {
	UploadWithContext(ctx context.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// DeleteAPI часть s3.S3, используемая хранилищем
type DeleteAPI interface {
	DeleteObjectWithContext(ctx context.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error)
}

// Storage загружает и удаляет объекты в одном бакете
type Storage struct {
	uploader UploadAPI
	client   DeleteAPI
	config   *Config
}

// NewStorage создает хранилище с AWS сессией
func NewStorage(config *Config) (*Storage, error) {
	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
	}

	// Совместимые хранилища работают с адресацией через путь
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return NewStorageWithClients(config, s3manager.NewUploader(sess), s3.New(sess)), nil
}

// NewStorageWithClients создает хранилище с готовыми клиентами
func NewStorageWithClients(config *Config, uploader UploadAPI, client DeleteAPI) *Storage {
	return &Storage{
		uploader: uploader,
		client:   client,
		config:   config,
	}
}

// Upload загружает поток и возвращает публичный URL объекта
func (s *Storage) Upload(ctx context.Context, reader io.Reader, key string) (string, error) {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.config.BucketName),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String("audio/mpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки: %w", err)
	}

	return s.ObjectURL(key), nil
}

// Delete удаляет объект
func (s *Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления файла из S3: %w", err)
	}
	return nil
}

// ObjectURL возвращает URL объекта в бакете
func (s *Storage) ObjectURL(key string) string {
	return s.baseURL() + "/" + url.PathEscape(key)
}

// KeyFromURL возвращает ключ объекта, если URL указывает в этот бакет
func (s *Storage) KeyFromURL(rawURL string) (string, bool) {
	prefix := s.baseURL() + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimPrefix(rawURL, prefix))
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

func (s *Storage) baseURL() string {
	if s.config.Endpoint != "" {
		return strings.TrimRight(s.config.Endpoint, "/") + "/" + s.config.BucketName
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.config.BucketName, s.config.Region)
}
