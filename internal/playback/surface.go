// Package playback связывает последовательность треков с поверхностью воспроизведения
package playback

// Тексты, которые координатор выводит на поверхность
const (
	LabelPlayingPrefix = "Playing: "
	LabelIdle          = "No Song Playing"
	ControlPause       = "Pause"
	ControlPlay        = "Play"
)

// Surface описывает то, чем управляет координатор: подпись, источник звука,
// состояние паузы, кнопку воспроизведения, подсветку треков и прогресс.
// Методы вызываются из цикла событий и не должны блокироваться.
type Surface interface {
	SetLabel(text string)
	SetSource(uri string)
	Play()
	Pause()
	Paused() bool
	SetControlLabel(text string)
	SetActive(title string, active bool)
	SetProgress(percent float64)
}

// ErrorReporter поверхность, которая показывает ошибки воспроизведения
type ErrorReporter interface {
	ReportError(err error)
}

// PlayingLabel возвращает подпись для играющего трека
func PlayingLabel(title string) string {
	return LabelPlayingPrefix + title
}
