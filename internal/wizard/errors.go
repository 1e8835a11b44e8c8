package wizard

import "errors"

var (
	// ErrBusy is returned when an intent arrives while an AI call is still in
	// flight for the session. Intents are rejected, not queued.
	ErrBusy = errors.New("another operation is in progress")

	ErrWrongStep            = errors.New("operation is not valid for the current step")
	ErrInsufficientCredits  = errors.New("insufficient credits")
	ErrEmptyBrand           = errors.New("business name is required")
	ErrIndexOutOfRange      = errors.New("candidate index out of range")
	ErrEmptySelection       = errors.New("no candidates selected")
	ErrNoConnectedPlatforms = errors.New("no platforms connected")
	ErrNoTargetPlatforms    = errors.New("no target platforms chosen")
	ErrPlatformNotConnected = errors.New("platform is not connected")
)
