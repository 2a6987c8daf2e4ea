package domain

import "time"

// Location is a geographic coordinate pair as shared by the user or stored
// in a profile.
type Location struct {
	Latitude  float64
	Longitude float64
}

// PendingKind tags a multi-turn flow waiting for the user's next message.
type PendingKind string

// PendingSetHome marks that the next location message becomes the home location.
const PendingSetHome PendingKind = "set_home"

// PendingAction is the one-shot state driving multi-turn flows. It is
// cleared exactly once by the event that satisfies it.
type PendingAction struct {
	Kind          PendingKind
	SinceMsgCount int // MsgCount at the moment the flow was started
}

// Profile is the persisted per-chat user record.
type Profile struct {
	ChatID      int64
	Home        *Location
	MsgCount    int
	Pending     *PendingAction
	LastContact time.Time // UTC
	CreatedAt   time.Time // UTC
}

// AwaitingHome reports whether the profile is waiting for a location
// message to complete the set-home flow.
func (p *Profile) AwaitingHome() bool {
	return p.Pending != nil && p.Pending.Kind == PendingSetHome
}
