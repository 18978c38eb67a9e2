package queue

import (
	"testing"

	"github.com/hazadus/go-playlist/internal/data"
)

func TestQueueFIFO(t *testing.T) {
	q := New()
	if !q.IsEmpty() {
		t.Fatal("Новая очередь должна быть пустой")
	}

	for _, title := range []string{"A", "B", "C"} {
		q.Enqueue(data.Track{Title: title})
	}
	if q.Len() != 3 {
		t.Fatalf("Ожидалось 3 элемента, получено %d", q.Len())
	}

	for _, expected := range []string{"A", "B", "C"} {
		got, ok := q.Dequeue()
		if !ok {
			t.Fatalf("Dequeue вернул false, ожидался %s", expected)
		}
		if got.Title != expected {
			t.Errorf("Ожидался %s, получено %s", expected, got.Title)
		}
	}

	if _, ok := q.Dequeue(); ok {
		t.Error("Dequeue из пустой очереди должен вернуть false")
	}
}

func TestQueueClear(t *testing.T) {
	q := New()
	q.Enqueue(data.Track{Title: "A"})
	q.Enqueue(data.Track{Title: "B"})

	q.Clear()

	if !q.IsEmpty() || q.Len() != 0 {
		t.Errorf("После Clear очередь должна быть пустой, элементов: %d", q.Len())
	}

	q.Enqueue(data.Track{Title: "C"})
	if got, _ := q.Dequeue(); got.Title != "C" {
		t.Errorf("Ожидался C после очистки, получено %s", got.Title)
	}
}
