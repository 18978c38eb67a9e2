// Package queue содержит простую FIFO-очередь треков
package queue

import "github.com/hazadus/go-playlist/internal/data"

// Queue хранит треки в порядке добавления
type Queue struct {
	items []data.Track
}

// New создает пустую очередь
func New() *Queue {
	return &Queue{}
}

// Enqueue добавляет трек в конец очереди
func (q *Queue) Enqueue(t data.Track) {
	q.items = append(q.items, t)
}

// Dequeue извлекает трек из начала очереди
func (q *Queue) Dequeue() (data.Track, bool) {
	if len(q.items) == 0 {
		return data.Track{}, false
	}
	t := q.items[0]
	q.items[0] = data.Track{}
	q.items = q.items[1:]
	return t, true
}

// IsEmpty сообщает, пуста ли очередь
func (q *Queue) IsEmpty() bool {
	return len(q.items) == 0
}

// Len возвращает количество треков в очереди
func (q *Queue) Len() int {
	return len(q.items)
}

// Clear удаляет все треки
func (q *Queue) Clear() {
	q.items = nil
}
