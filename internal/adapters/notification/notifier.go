// Package notification provides desktop notification utilities.
package notification

import (
	"sync"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/averin/planday/internal/config"
	"github.com/averin/planday/internal/ports"
)

// tonePeriod is the pause between beeps of the repeating alert tone.
const tonePeriod = 700 * time.Millisecond

// Notifier handles desktop notifications and the repeating alert tone.
type Notifier struct {
	cfg *config.NotificationConfig

	mu       sync.Mutex
	toneStop chan struct{}
	toneWG   sync.WaitGroup
}

// Ensure Notifier implements ports.Alerter.
var _ ports.Alerter = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if n.cfg == nil || !n.cfg.Enabled {
		return nil
	}

	return beeep.Notify(title, message, "")
}

// StartTone starts the repeating alert tone worker. The worker beeps until
// StopTone is called; a tone that is already playing keeps playing.
func (n *Notifier) StartTone() {
	if n.cfg == nil || !n.cfg.Enabled || !n.cfg.Sound {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.toneStop != nil {
		return
	}

	stop := make(chan struct{})
	n.toneStop = stop
	n.toneWG.Add(1)
	go func() {
		defer n.toneWG.Done()
		for {
			// Sound is best-effort: a failed beep never blocks the loop.
			_ = beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
			select {
			case <-stop:
				return
			case <-time.After(tonePeriod):
			}
		}
	}()
}

// StopTone signals the tone worker and waits for it to exit.
func (n *Notifier) StopTone() {
	n.mu.Lock()
	stop := n.toneStop
	n.toneStop = nil
	n.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	n.toneWG.Wait()
}

// SetEnabled toggles notifications at runtime.
func (n *Notifier) SetEnabled(enabled bool) {
	if n.cfg != nil {
		n.cfg.Enabled = enabled
	}
	if !enabled {
		n.StopTone()
	}
}

// SetSound toggles the audible cue at runtime. Disabling sound stops any
// tone currently playing.
func (n *Notifier) SetSound(sound bool) {
	if n.cfg != nil {
		n.cfg.Sound = sound
	}
	if !sound {
		n.StopTone()
	}
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
