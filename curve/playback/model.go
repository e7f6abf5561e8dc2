package playback

import (
	"time"

	"github.com/sgostarter/libspline/curve"
)

type Mode int

const (
	// ModeLoop wraps time into [0, MaxTime), moving backward included.
	ModeLoop Mode = iota
	// ModeClamp holds the curve's end points outside [0, MaxTime].
	ModeClamp
)

type Config struct {
	Mode        Mode
	MailboxSize int
}

// Snapshot is a published curve. It is never modified after publication.
type Snapshot struct {
	ID    uint64
	Curve *curve.Curve
	At    time.Time
}

type Observer interface {
	OnSnapshot(s *Snapshot)
	OnLoadFailed(cfg *curve.Config, err error)
}
