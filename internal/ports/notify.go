package ports

// Alerter defines the notification collaborator: it shows a titled message
// on screen and can run a repeating audible cue while one is visible.
// This is a driven port (implemented by adapters).
type Alerter interface {
	// Notify displays a desktop notification.
	Notify(title, message string) error

	// StartTone begins the repeating alert tone. Starting an already
	// running tone is a no-op.
	StartTone()

	// StopTone stops the repeating tone and waits for the tone worker to
	// exit. Safe to call when no tone is playing.
	StopTone()
}
