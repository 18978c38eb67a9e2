// Package track содержит упорядоченную последовательность треков с курсором
package track

import (
	"fmt"

	"github.com/hazadus/go-playlist/internal/data"
)

// ErrDuplicateTitle возвращается, если два трека последовательности имеют одинаковое название
var ErrDuplicateTitle = data.ErrDuplicateTitle

const noCursor = -1

// Sequence хранит треки в порядке каталога и курсор на текущий трек.
// Не синхронизирована: владельцем является один цикл событий.
type Sequence struct {
	tracks []data.Track
	index  map[string]int
	cursor int
}

// NewSequence создает последовательность в порядке входного списка.
// Курсор стоит на первом треке, а для пустого списка не установлен.
func NewSequence(tracks []data.Track) (*Sequence, error) {
	s := &Sequence{
		tracks: make([]data.Track, 0, len(tracks)),
		index:  make(map[string]int, len(tracks)),
		cursor: noCursor,
	}
	for _, t := range tracks {
		if err := s.Append(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Append добавляет трек в конец последовательности
func (s *Sequence) Append(t data.Track) error {
	if pos, ok := s.index[t.Title]; ok {
		return fmt.Errorf("%w: %q на позициях %d и %d", ErrDuplicateTitle, t.Title, pos, len(s.tracks))
	}

	s.index[t.Title] = len(s.tracks)
	s.tracks = append(s.tracks, t)
	if s.cursor == noCursor {
		s.cursor = 0
	}
	return nil
}

// Current возвращает трек под курсором
func (s *Sequence) Current() (data.Track, bool) {
	if s.cursor == noCursor {
		return data.Track{}, false
	}
	return s.tracks[s.cursor], true
}

// Advance переводит курсор на следующий трек.
// На последнем треке возвращает false и курсор не двигается.
func (s *Sequence) Advance() (data.Track, bool) {
	if s.cursor == noCursor || s.cursor+1 >= len(s.tracks) {
		return data.Track{}, false
	}
	s.cursor++
	return s.tracks[s.cursor], true
}

// Retreat переводит курсор на предыдущий трек.
// На первом треке возвращает false и курсор не двигается.
func (s *Sequence) Retreat() (data.Track, bool) {
	if s.cursor <= 0 {
		return data.Track{}, false
	}
	s.cursor--
	return s.tracks[s.cursor], true
}

// SeekByTitle ставит курсор на трек с указанным названием.
// Если такого трека нет, курсор не меняется.
func (s *Sequence) SeekByTitle(title string) bool {
	pos, ok := s.index[title]
	if !ok {
		return false
	}
	s.cursor = pos
	return true
}

// Len возвращает количество треков
func (s *Sequence) Len() int {
	return len(s.tracks)
}

// Index возвращает позицию курсора или -1
func (s *Sequence) Index() int {
	return s.cursor
}

// Tracks возвращает копию треков в порядке последовательности
func (s *Sequence) Tracks() []data.Track {
	out := make([]data.Track, len(s.tracks))
	copy(out, s.tracks)
	return out
}

// Titles возвращает названия треков по порядку
func (s *Sequence) Titles() []string {
	titles := make([]string, len(s.tracks))
	for i, t := range s.tracks {
		titles[i] = t.Title
	}
	return titles
}
