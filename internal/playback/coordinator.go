package playback

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hazadus/go-playlist/internal/data"
	"github.com/hazadus/go-playlist/internal/queue"
	"github.com/hazadus/go-playlist/internal/track"
)

// ErrUnknownEvent возвращается Dispatch для неизвестного типа события
var ErrUnknownEvent = errors.New("неизвестное событие")

// Coordinator переводит события в операции над последовательностью
// и команды для поверхности воспроизведения
type Coordinator struct {
	seq     *track.Sequence
	surface Surface
	// Очередь заполняется при создании и очищается при выборе трека,
	// порядок воспроизведения от нее не зависит.
	pending *queue.Queue
}

// NewCoordinator создает координатор для последовательности и поверхности
func NewCoordinator(seq *track.Sequence, surface Surface) *Coordinator {
	pending := queue.New()
	for _, t := range seq.Tracks() {
		pending.Enqueue(t)
	}
	return &Coordinator{
		seq:     seq,
		surface: surface,
		pending: pending,
	}
}

// Start отображает текущий трек после загрузки
func (c *Coordinator) Start() {
	c.Render(c.seq.Current())
}

// Current возвращает трек под курсором
func (c *Coordinator) Current() (data.Track, bool) {
	return c.seq.Current()
}

// Pending возвращает количество треков в служебной очереди
func (c *Coordinator) Pending() int {
	return c.pending.Len()
}

// Dispatch обрабатывает одно событие
func (c *Coordinator) Dispatch(ev Event) error {
	if ev.Type != EventProgress {
		log.Debug().Str("event", ev.Type.String()).Str("title", ev.Title).Msg("событие")
	}

	switch ev.Type {
	case EventSelect:
		c.OnSelect(ev.Title)
	case EventNext:
		c.OnNext()
	case EventPrevious:
		c.OnPrevious()
	case EventToggle:
		c.OnTogglePlayPause()
	case EventEnded:
		c.OnEnded()
	case EventProgress:
		c.OnProgress(ev.Current, ev.Duration)
	case EventFailed:
		c.OnFailed(ev.Err)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownEvent, ev.Type)
	}
	return nil
}

// OnSelect переходит к треку по названию.
// Если трек не найден, ничего не меняется.
func (c *Coordinator) OnSelect(title string) bool {
	c.pending.Clear()
	if !c.seq.SeekByTitle(title) {
		log.Info().Str("title", title).Msg("трек не найден")
		return false
	}
	c.Render(c.seq.Current())
	return true
}

// OnNext переходит к следующему треку или останавливает воспроизведение в конце списка
func (c *Coordinator) OnNext() {
	next, ok := c.seq.Advance()
	if !ok {
		log.Info().Msg("достигнут конец списка")
		c.stop()
		return
	}
	c.Render(next, true)
}

// OnEnded обрабатывает естественное окончание трека так же, как переход к следующему
func (c *Coordinator) OnEnded() {
	c.OnNext()
}

// OnPrevious переходит к предыдущему треку или останавливает воспроизведение в начале списка
func (c *Coordinator) OnPrevious() {
	prev, ok := c.seq.Retreat()
	if !ok {
		log.Info().Msg("достигнуто начало списка")
		c.stop()
		return
	}
	c.Render(prev, true)
}

// OnTogglePlayPause переключает паузу, не трогая курсор
func (c *Coordinator) OnTogglePlayPause() {
	if c.surface.Paused() {
		c.surface.Play()
		c.surface.SetControlLabel(ControlPause)
		return
	}
	c.surface.Pause()
	c.surface.SetControlLabel(ControlPlay)
}

// OnProgress обновляет индикатор прогресса. Тики без длительности игнорируются.
func (c *Coordinator) OnProgress(current, duration time.Duration) {
	if duration <= 0 {
		return
	}
	c.surface.SetProgress(float64(current) / float64(duration) * 100)
}

// OnFailed показывает ошибку и переводит поверхность в паузу,
// чтобы следующее переключение паузы загрузило трек заново.
// Курсор и подпись не меняются.
func (c *Coordinator) OnFailed(err error) {
	log.Error().Err(err).Msg("ошибка воспроизведения трека")
	if reporter, ok := c.surface.(ErrorReporter); ok {
		reporter.ReportError(err)
	}
	c.stop()
}

// Render выводит трек на поверхность и запускает его.
// Без трека поверхность переходит в состояние простоя, подсветка не меняется.
func (c *Coordinator) Render(t data.Track, ok bool) {
	if !ok {
		c.surface.SetLabel(LabelIdle)
		c.surface.Pause()
		c.surface.SetSource("")
		c.surface.SetControlLabel(ControlPlay)
		return
	}

	c.surface.SetLabel(PlayingLabel(t.Title))
	c.surface.SetSource(t.URL)
	c.surface.Play()
	c.surface.SetControlLabel(ControlPause)
	for _, title := range c.seq.Titles() {
		c.surface.SetActive(title, title == t.Title)
	}
}

// stop ставит на паузу, оставляя подпись и источник
func (c *Coordinator) stop() {
	c.surface.Pause()
	c.surface.SetControlLabel(ControlPlay)
}
