// Package player содержит компоненты для управления воспроизведением аудио
package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog/log"

	"github.com/hazadus/go-playlist/internal/streaming"
)

// Status представляет текущий статус плеера
type Status struct {
	Source     string        // Источник, к которому относится статус
	Current    time.Duration // Текущая позиция
	Total      time.Duration // Общая продолжительность, 0 если неизвестна
	IsPlaying  bool          // Воспроизводится ли трек
	StuckCount int           // Сколько тиков подряд позиция не менялась
}

// Player воспроизводит один источник за раз.
// Состояние паузы отражает намерение: после Pause плеер считается на паузе,
// даже если источник еще не загружен.
type Player struct {
	progressChan chan Status
	doneChan     chan string

	ctx        context.Context
	cancel     context.CancelFunc
	mutex      sync.RWMutex
	bufferSize int

	// loadMu защищает отмену загрузки и не удерживается во время нее
	loadMu     sync.Mutex
	loadCancel context.CancelFunc
	loadEpoch  int

	sampleRate    beep.SampleRate
	isInitialized bool
	isPaused      bool
	source        string
	generation    int

	streamer     beep.StreamSeekCloser
	ctrl         *beep.Ctrl
	streamReader *streaming.Reader
	format       beep.Format
}

// NewPlayer создает новый экземпляр плеера
func NewPlayer(bufferSize int) *Player {
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		progressChan: make(chan Status, 1),
		doneChan:     make(chan string, 1),
		ctx:          ctx,
		cancel:       cancel,
		bufferSize:   bufferSize,
		isPaused:     true,
	}
}

// Progress возвращает канал для получения обновлений прогресса
func (p *Player) Progress() <-chan Status {
	return p.progressChan
}

// Done возвращает канал, в который приходит источник естественно доигранного трека
func (p *Player) Done() <-chan string {
	return p.doneChan
}

// SetSource меняет источник и останавливает текущее воспроизведение.
// Пустая строка снимает источник.
func (p *Player) SetSource(uri string) {
	p.interruptLoad()
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.stopInternal()
	p.source = uri
}

// Source возвращает текущий источник
func (p *Player) Source() string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.source
}

// Play запускает или возобновляет воспроизведение текущего источника.
// Если источник не загружен или уже доигран, он загружается заново.
// Отмена ctx, SetSource, Stop или Close прерывают загрузку; прерванная
// загрузка не считается ошибкой. Поток загруженного трека живет, пока
// не отменен ctx или не сменился источник.
func (p *Player) Play(ctx context.Context) error {
	epoch := p.currentEpoch()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
		p.isPaused = false
		return nil
	}
	if p.source == "" || p.ctx.Err() != nil || ctx.Err() != nil {
		return nil
	}

	loadCtx, cancel := context.WithCancel(p.ctx)
	context.AfterFunc(ctx, cancel)
	if !p.beginLoad(epoch, cancel) {
		cancel()
		return nil
	}

	if err := p.load(loadCtx); err != nil {
		p.finishLoad()
		p.isPaused = true
		if loadCtx.Err() != nil {
			log.Debug().Str("source", p.source).Msg("загрузка прервана")
			return nil
		}
		return err
	}
	p.isPaused = false
	return nil
}

func (p *Player) currentEpoch() int {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	return p.loadEpoch
}

// beginLoad запоминает отмену загрузки. Возвращает false, если после
// вызова Play источник уже успели сменить или остановить.
func (p *Player) beginLoad(epoch int, cancel context.CancelFunc) bool {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	if epoch != p.loadEpoch {
		return false
	}
	p.loadCancel = cancel
	return true
}

// interruptLoad отменяет текущую загрузку или поток загруженного трека.
// Play, начатый до вызова, ничего не загрузит.
func (p *Player) interruptLoad() {
	p.loadMu.Lock()
	p.loadEpoch++
	p.loadMu.Unlock()
	p.finishLoad()
}

// finishLoad освобождает контекст загрузки, не затрагивая ожидающие вызовы Play
func (p *Player) finishLoad() {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	if p.loadCancel != nil {
		p.loadCancel()
		p.loadCancel = nil
	}
}

// load открывает и запускает источник (должен вызываться под мьютексом)
func (p *Player) load(ctx context.Context) error {
	streamReader, err := streaming.Open(ctx, p.source, p.bufferSize)
	if err != nil {
		return fmt.Errorf("ошибка открытия источника %s: %w", p.source, err)
	}

	streamer, format, err := mp3.Decode(streamReader)
	if err != nil {
		streamReader.Close()
		return fmt.Errorf("ошибка декодирования MP3: %w", err)
	}

	// Динамики инициализируются один раз с частотой первого трека
	if !p.isInitialized {
		err = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/5))
		if err != nil {
			streamer.Close()
			streamReader.Close()
			return fmt.Errorf("ошибка инициализации динамиков: %w", err)
		}
		p.sampleRate = format.SampleRate
		p.isInitialized = true
	}

	var out beep.Streamer = streamer
	if format.SampleRate != p.sampleRate {
		out = beep.Resample(4, format.SampleRate, p.sampleRate, streamer)
	}

	p.generation++
	gen := p.generation
	p.streamReader = streamReader
	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: out}

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		// Колбэк выполняется под блокировкой speaker
		go p.markFinished(gen)
	})))

	go p.monitorProgress(gen)

	log.Debug().Str("source", p.source).Int("sample_rate", int(format.SampleRate)).Msg("трек загружен")
	return nil
}

// markFinished освобождает доигранный трек и уведомляет подписчика
func (p *Player) markFinished(gen int) {
	p.mutex.Lock()
	if gen != p.generation || p.ctrl == nil {
		p.mutex.Unlock()
		return
	}
	p.releaseInternal()
	p.finishLoad()
	p.isPaused = true
	source := p.source
	p.mutex.Unlock()

	log.Debug().Str("source", source).Msg("трек доигран")
	select {
	case p.doneChan <- source:
	default:
	}
}

// Pause приостанавливает воспроизведение. Повторный вызов ничего не меняет.
func (p *Player) Pause() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.isPaused = true
	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
	}
}

// Paused возвращает true, если плеер на паузе или ничего не играет
func (p *Player) Paused() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.isPaused
}

// Stop останавливает воспроизведение, сохраняя источник
func (p *Player) Stop() {
	p.interruptLoad()
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.stopInternal()
}

// stopInternal внутренний метод остановки (должен вызываться под мьютексом)
func (p *Player) stopInternal() {
	if p.ctrl != nil {
		speaker.Clear()
	}
	p.releaseInternal()
	p.generation++
	p.isPaused = true
}

// releaseInternal закрывает декодер и поток (должен вызываться под мьютексом)
func (p *Player) releaseInternal() {
	p.ctrl = nil
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.streamReader != nil {
		p.streamReader.Close()
		p.streamReader = nil
	}
}

// Close закрывает плеер и освобождает ресурсы
func (p *Player) Close() error {
	p.cancel()
	p.Stop()
	return nil
}

// monitorProgress раз в секунду отправляет статус, пока загружен трек поколения gen
func (p *Player) monitorProgress(gen int) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastPosition := time.Duration(-1)
	stuckCount := 0

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.mutex.RLock()
			if gen != p.generation || p.streamer == nil {
				p.mutex.RUnlock()
				return
			}

			speaker.Lock()
			current := p.format.SampleRate.D(p.streamer.Position())
			total := p.format.SampleRate.D(p.streamer.Len())
			speaker.Unlock()

			if total <= 0 {
				total = estimateTotal(current, p.streamReader.Consumed(), p.streamReader.Size())
			}
			status := Status{
				Source:    p.source,
				Current:   current,
				Total:     total,
				IsPlaying: !p.isPaused,
			}
			p.mutex.RUnlock()

			if status.IsPlaying && current == lastPosition {
				stuckCount++
			} else {
				stuckCount = 0
			}
			lastPosition = current
			status.StuckCount = stuckCount

			select {
			case p.progressChan <- status:
			default:
				// Если канал заблокирован, пропускаем обновление
			}
		}
	}
}

// estimateTotal оценивает длительность по доле прочитанных байтов
func estimateTotal(current time.Duration, consumed, size int64) time.Duration {
	if current <= 0 || consumed <= 0 || size <= 0 {
		return 0
	}
	if consumed >= size {
		return current
	}
	return time.Duration(float64(current) * float64(size) / float64(consumed))
}
