package sim

import "github.com/vovakirdan/chuteworks/internal/config"

// FlashToken identifies one run of the flash animation.
type FlashToken uint64

// Flash is the out-of-fuel indicator: a fixed number of on/off phases
// driven by elapsed time. At most one run is active; starting a new one
// replaces the old.
type Flash struct {
	toggles int
	period  float64

	token   FlashToken
	running bool
	phase   int
	elapsed float64
}

// NewFlash creates an idle flash.
func NewFlash(cfg config.FlashConfig) *Flash {
	return &Flash{toggles: cfg.Toggles, period: cfg.Period}
}

// Start cancels any running flash and begins a new one, visible first.
func (f *Flash) Start() FlashToken {
	f.token++
	f.running = f.toggles > 0
	f.phase = 0
	f.elapsed = 0
	return f.token
}

// Cancel stops the flash only if tok identifies the current run.
func (f *Flash) Cancel(tok FlashToken) {
	if tok == f.token {
		f.running = false
	}
}

// Advance moves the animation forward by dt seconds.
func (f *Flash) Advance(dt float64) {
	if !f.running || dt <= 0 {
		return
	}
	f.elapsed += dt
	for f.running && f.elapsed >= f.period {
		f.elapsed -= f.period
		f.phase++
		if f.phase >= f.toggles {
			f.running = false
		}
	}
}

// Running reports whether a flash is in progress.
func (f *Flash) Running() bool { return f.running }

// Visible reports whether the indicator is lit. Even phases are lit.
func (f *Flash) Visible() bool {
	return f.running && f.phase%2 == 0
}

// Token returns the token of the latest run.
func (f *Flash) Token() FlashToken { return f.token }
