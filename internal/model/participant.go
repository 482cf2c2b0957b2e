package model

import (
	"encoding/json"
	"time"
)

// Participant is a named occupant of the chat room
type Participant struct {
	Name     string
	LastSeen time.Time
}

type participantJSON struct {
	Name     string `json:"name"`
	LastSeen int64  `json:"lastSeen"`
}

// MarshalJSON encodes LastSeen as unix milliseconds
func (p Participant) MarshalJSON() ([]byte, error) {
	return json.Marshal(participantJSON{Name: p.Name, LastSeen: p.LastSeen.UnixMilli()})
}

// UnmarshalJSON decodes LastSeen from unix milliseconds
func (p *Participant) UnmarshalJSON(data []byte) error {
	var raw participantJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Name = raw.Name
	p.LastSeen = time.UnixMilli(raw.LastSeen)
	return nil
}

// IdleSince reports whether the participant has not been seen for at least d
func (p Participant) IdleSince(now time.Time, d time.Duration) bool {
	return now.Sub(p.LastSeen) >= d
}
