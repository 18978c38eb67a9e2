// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath путь к файлу конфигурации по умолчанию
const DefaultPath = "~/.playlist.yaml"

// Config структура для хранения конфигурации приложения
type Config struct {
	CatalogFile string `yaml:"catalog_file"`
	LogFile     string `yaml:"log_file"`
	LogLevel    string `yaml:"log_level"`
	BufferSize  int    `yaml:"buffer_size"`

	AwsBucketName string `yaml:"aws_bucket_name"`
	AwsAccessKey  string `yaml:"aws_access_key"`
	AwsSecretKey  string `yaml:"aws_secret_key"`
	AwsRegion     string `yaml:"aws_region"`
	AwsEndpoint   string `yaml:"aws_endpoint"`
}

// DefaultConfig возвращает конфигурацию по умолчанию с учетом переменных окружения
func DefaultConfig() *Config {
	config := &Config{}
	config.applyDefaults()
	config.ApplyEnv()
	config.expandPaths()
	return config
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Переменные окружения имеют приоритет над значениями из файла.
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	config.applyDefaults()
	config.ApplyEnv()
	config.expandPaths()
	return config, nil
}

// ApplyEnv переопределяет значения из переменных окружения
func (c *Config) ApplyEnv() {
	c.CatalogFile = getEnv("PLAYLIST_CATALOG_FILE", c.CatalogFile)
	c.LogFile = getEnv("PLAYLIST_LOG_FILE", c.LogFile)
	c.LogLevel = getEnv("PLAYLIST_LOG_LEVEL", c.LogLevel)
	if size, err := strconv.Atoi(os.Getenv("PLAYLIST_BUFFER_SIZE")); err == nil && size > 0 {
		c.BufferSize = size
	}

	c.AwsBucketName = getEnv("AWS_BUCKET_NAME", c.AwsBucketName)
	c.AwsAccessKey = getEnv("AWS_ACCESS_KEY", c.AwsAccessKey)
	c.AwsSecretKey = getEnv("AWS_SECRET_KEY", c.AwsSecretKey)
	c.AwsRegion = getEnv("AWS_REGION", c.AwsRegion)
	c.AwsEndpoint = getEnv("AWS_ENDPOINT", c.AwsEndpoint)
}

// HasStorage сообщает, настроено ли хранилище S3
func (c *Config) HasStorage() bool {
	return c.AwsBucketName != "" && c.AwsRegion != ""
}

// applyDefaults устанавливает значения по умолчанию, если они не заданы
func (c *Config) applyDefaults() {
	if c.CatalogFile == "" {
		c.CatalogFile = "~/.playlist/catalog.yaml"
	}
	if c.LogFile == "" {
		c.LogFile = "~/.playlist/playlist.log"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.BufferSize <= 0 {
		c.BufferSize = 256 * 1024
	}
}

// expandPaths раскрывает тильду в путях
func (c *Config) expandPaths() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	c.CatalogFile = expandHome(c.CatalogFile, home)
	c.LogFile = expandHome(c.LogFile, home)
}

func expandHome(path, home string) string {
	if strings.HasPrefix(path, "~") {
		return strings.Replace(path, "~", home, 1)
	}
	return path
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
