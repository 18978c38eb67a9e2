package console

import (
	"context"
	"fmt"
	"io"

	"github.com/hazadus/go-playlist/internal/playback"
)

// Action результат нажатия клавиши
type Action int

const (
	ActionNone Action = iota
	ActionEvent
	ActionQuit
)

const ctrlC = 3

// MapKey переводит нажатую клавишу в событие.
// Цифры 1-9 выбирают трек по позиции в titles.
func MapKey(key byte, titles []string) (playback.Event, Action) {
	switch key {
	case 'n':
		return playback.Next(), ActionEvent
	case 'p':
		return playback.Previous(), ActionEvent
	case ' ':
		return playback.TogglePlayPause(), ActionEvent
	case 'q', ctrlC:
		return playback.Event{}, ActionQuit
	}

	if key >= '1' && key <= '9' {
		pos := int(key - '1')
		if pos < len(titles) {
			return playback.Select(titles[pos]), ActionEvent
		}
	}
	return playback.Event{}, ActionNone
}

// ReadKeys читает клавиши из in и отправляет события в events.
// Возвращает nil при выходе по q или Ctrl+C.
func ReadKeys(ctx context.Context, in io.Reader, titles []string, events chan<- playback.Event) error {
	buf := make([]byte, 1)
	for {
		if _, err := in.Read(buf); err != nil {
			return err
		}

		ev, action := MapKey(buf[0], titles)
		switch action {
		case ActionQuit:
			return nil
		case ActionEvent:
			select {
			case events <- ev:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// PrintHelp выводит список управляющих клавиш и треков
func PrintHelp(out io.Writer, titles []string) {
	fmt.Fprint(out, "🎵 Плейлист\r\n")
	fmt.Fprint(out, "Управление:\tпробел=пауза\tn=следующий\tp=предыдущий\tq=выход\r\n")
	for i, title := range titles {
		if i >= 9 {
			fmt.Fprintf(out, "   %s\r\n", title)
			continue
		}
		fmt.Fprintf(out, "%d. %s\r\n", i+1, title)
	}
}
