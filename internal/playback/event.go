package playback

import (
	"fmt"
	"time"
)

// EventType определяет тип события навигации или воспроизведения
type EventType int

const (
	EventSelect EventType = iota
	EventNext
	EventPrevious
	EventToggle
	EventEnded
	EventProgress
	EventFailed
)

func (e EventType) String() string {
	switch e {
	case EventSelect:
		return "select"
	case EventNext:
		return "next"
	case EventPrevious:
		return "previous"
	case EventToggle:
		return "toggle"
	case EventEnded:
		return "ended"
	case EventProgress:
		return "progress"
	case EventFailed:
		return "failed"
	default:
		return fmt.Sprintf("EventType(%d)", int(e))
	}
}

// Event описывает одно входящее событие.
// Title заполняется для select, Current и Duration для progress, Err для failed.
type Event struct {
	Type     EventType
	Title    string
	Current  time.Duration
	Duration time.Duration
	Err      error
}

// Select выбирает трек по названию
func Select(title string) Event {
	return Event{Type: EventSelect, Title: title}
}

// Next переходит к следующему треку
func Next() Event {
	return Event{Type: EventNext}
}

// Previous переходит к предыдущему треку
func Previous() Event {
	return Event{Type: EventPrevious}
}

// TogglePlayPause переключает паузу
func TogglePlayPause() Event {
	return Event{Type: EventToggle}
}

// Ended сообщает о естественном окончании трека
func Ended() Event {
	return Event{Type: EventEnded}
}

// ProgressTick сообщает текущую позицию воспроизведения
func ProgressTick(current, duration time.Duration) Event {
	return Event{Type: EventProgress, Current: current, Duration: duration}
}

// Failed сообщает об ошибке загрузки или воспроизведения текущего трека
func Failed(err error) Event {
	return Event{Type: EventFailed, Err: err}
}
