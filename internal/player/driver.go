package player

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Audio операции, которые Driver выполняет в фоне
type Audio interface {
	SetSource(uri string)
	Play(ctx context.Context) error
	Pause()
}

// Driver выполняет команды плеера последовательно в отдельной горутине,
// чтобы загрузка трека по сети не блокировала цикл событий.
// Постановка команды в очередь никогда не блокируется.
// Смена источника отменяет загрузку предыдущего, а еще не выполненные
// команды Play для него пропускаются.
// Ошибки воспроизведения приходят в канал Errors.
type Driver struct {
	audio Audio
	errs  chan error
	done  chan struct{}
	once  sync.Once

	mu           sync.Mutex
	cond         *sync.Cond
	queue        []func() error
	closed       bool
	sourceCtx    context.Context
	sourceCancel context.CancelFunc
}

// NewDriver запускает обработчик команд для audio
func NewDriver(audio Audio) *Driver {
	d := &Driver{
		audio: audio,
		errs:  make(chan error, 8),
		done:  make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)
	d.sourceCtx, d.sourceCancel = context.WithCancel(context.Background())
	go d.run()
	return d
}

func (d *Driver) run() {
	defer close(d.done)
	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		cmd := d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]
		d.mu.Unlock()

		if err := cmd(); err != nil {
			log.Error().Err(err).Msg("ошибка воспроизведения")
			select {
			case d.errs <- err:
			default:
			}
		}
	}
}

// pushLocked добавляет команду в очередь (должен вызываться под d.mu)
func (d *Driver) pushLocked(cmd func() error) {
	if d.closed {
		return
	}
	d.queue = append(d.queue, cmd)
	d.cond.Signal()
}

// SetSource ставит в очередь смену источника и сразу прерывает
// загрузку предыдущего
func (d *Driver) SetSource(uri string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sourceCancel()
	d.sourceCtx, d.sourceCancel = context.WithCancel(context.Background())
	d.pushLocked(func() error {
		d.audio.SetSource(uri)
		return nil
	})
}

// Play ставит в очередь запуск воспроизведения текущего источника
func (d *Driver) Play() {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx := d.sourceCtx
	d.pushLocked(func() error {
		if ctx.Err() != nil {
			return nil
		}
		err := d.audio.Play(ctx)
		if err != nil && ctx.Err() != nil {
			// Источник сменился во время загрузки
			return nil
		}
		return err
	})
}

// Pause ставит в очередь паузу
func (d *Driver) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pushLocked(func() error {
		d.audio.Pause()
		return nil
	})
}

// Errors возвращает канал ошибок воспроизведения
func (d *Driver) Errors() <-chan error {
	return d.errs
}

// Close дожидается выполнения поставленных команд и останавливает обработчик.
// Зависшую загрузку прерывает закрытие плеера, поэтому плеер закрывают первым.
func (d *Driver) Close() {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.cond.Broadcast()
		d.mu.Unlock()
	})
	<-d.done

	d.mu.Lock()
	d.sourceCancel()
	d.mu.Unlock()
}
