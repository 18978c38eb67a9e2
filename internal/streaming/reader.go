// Package streaming открывает источники треков для потокового декодирования
package streaming

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// ErrEmptyLocator возвращается при попытке открыть пустой источник
var ErrEmptyLocator = errors.New("пустой источник трека")

// DefaultBufferSize размер буфера чтения по умолчанию
const DefaultBufferSize = 256 * 1024

var client = &http.Client{
	// Общего таймаута нет: поток читается все время воспроизведения
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       300 * time.Second,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		ExpectContinueTimeout: 1 * time.Second,
	},
}

// Reader буферизованный поток байтов трека.
// Считает прочитанные байты, чтобы оценивать позицию, когда длина трека неизвестна.
type Reader struct {
	reader   *bufio.Reader
	body     io.Closer
	size     int64
	consumed atomic.Int64
}

// Open открывает источник: http(s) URL, file:// URI или локальный путь
func Open(ctx context.Context, locator string, bufferSize int) (*Reader, error) {
	if locator == "" {
		return nil, ErrEmptyLocator
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	switch {
	case strings.HasPrefix(locator, "http://"), strings.HasPrefix(locator, "https://"):
		return openHTTP(ctx, locator, bufferSize)
	case strings.HasPrefix(locator, "file://"):
		u, err := url.Parse(locator)
		if err != nil {
			return nil, fmt.Errorf("некорректный file URI: %w", err)
		}
		return openFile(u.Path, bufferSize)
	default:
		return openFile(locator, bufferSize)
	}
}

func openHTTP(ctx context.Context, locator string, bufferSize int) (*Reader, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Accept-Encoding", "identity")
	req.Header.Set("Range", "bytes=0-")
	req.Header.Set("User-Agent", "go-playlist/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		return nil, fmt.Errorf("ошибка HTTP: %s", resp.Status)
	}

	return &Reader{
		reader: bufio.NewReaderSize(resp.Body, bufferSize),
		body:   resp.Body,
		size:   resp.ContentLength,
	}, nil
}

func openFile(path string, bufferSize int) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	size := int64(-1)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}
	return &Reader{
		reader: bufio.NewReaderSize(f, bufferSize),
		body:   f,
		size:   size,
	}, nil
}

// Read реализует io.Reader
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.consumed.Add(int64(n))
	return n, err
}

// Close закрывает соединение или файл
func (r *Reader) Close() error {
	return r.body.Close()
}

// Size возвращает размер источника в байтах или -1, если он неизвестен
func (r *Reader) Size() int64 {
	return r.size
}

// Consumed возвращает количество прочитанных байтов
func (r *Reader) Consumed() int64 {
	return r.consumed.Load()
}

// GetStreamStatus возвращает текстовое описание состояния потока
func GetStreamStatus(stuckCount int) string {
	switch {
	case stuckCount == 0:
		return "Потоковое воспроизведение"
	case stuckCount <= 3:
		return "Буферизация..."
	case stuckCount <= 5:
		return "Медленная загрузка"
	default:
		return "Возможная проблема с соединением"
	}
}
