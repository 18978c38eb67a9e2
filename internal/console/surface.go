// Package console содержит поверхность воспроизведения для обычного терминала
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/hazadus/go-playlist/internal/playback"
)

// Audio команды, которые поверхность передает плееру
type Audio interface {
	SetSource(uri string)
	Play()
	Pause()
}

const progressWidth = 30

// Surface выводит состояние плеера построчно.
// Терминал находится в raw-режиме, поэтому строки завершаются \r\n.
type Surface struct {
	out     io.Writer
	audio   Audio
	paused  bool
	label   string
	control string
	active  string
	percent float64

	// source читается горутиной, пересылающей сигналы плеера
	mu     sync.Mutex
	source string
}

// NewSurface создает консольную поверхность
func NewSurface(out io.Writer, audio Audio) *Surface {
	return &Surface{
		out:     out,
		audio:   audio,
		paused:  true,
		label:   playback.LabelIdle,
		control: playback.ControlPlay,
	}
}

// SetLabel выводит новую подпись
func (s *Surface) SetLabel(text string) {
	s.label = text
	s.percent = 0
	fmt.Fprintf(s.out, "\r\n%s\r\n", text)
}

// SetSource передает источник плееру
func (s *Surface) SetSource(uri string) {
	s.mu.Lock()
	s.source = uri
	s.mu.Unlock()
	s.audio.SetSource(uri)
}

// Source возвращает последний заданный источник
func (s *Surface) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Play запускает воспроизведение
func (s *Surface) Play() {
	s.paused = false
	s.audio.Play()
}

// Pause ставит на паузу
func (s *Surface) Pause() {
	s.paused = true
	s.audio.Pause()
}

// Paused возвращает состояние паузы
func (s *Surface) Paused() bool {
	return s.paused
}

// SetControlLabel запоминает подпись кнопки и обновляет строку состояния
func (s *Surface) SetControlLabel(text string) {
	s.control = text
	s.printStatus()
}

// SetActive запоминает подсвеченный трек
func (s *Surface) SetActive(title string, active bool) {
	if active {
		s.active = title
	} else if s.active == title {
		s.active = ""
	}
}

// SetProgress обновляет полосу прогресса
func (s *Surface) SetProgress(percent float64) {
	s.percent = percent
	s.printStatus()
}

// Active возвращает подсвеченный трек
func (s *Surface) Active() string {
	return s.active
}

// Label возвращает текущую подпись
func (s *Surface) Label() string {
	return s.label
}

// ReportError выводит ошибку воспроизведения
func (s *Surface) ReportError(err error) {
	fmt.Fprintf(s.out, "\r\n❌ %v\r\n", err)
}

// printStatus перерисовывает строку прогресса на месте
func (s *Surface) printStatus() {
	fmt.Fprintf(s.out, "\r%s %5.1f%%  [%s]", progressBar(s.percent, progressWidth), s.percent, s.control)
}

func progressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
