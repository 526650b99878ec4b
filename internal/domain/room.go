package domain

type (
	RoomID        string
	ParticipantID string
)

// UserParticipant is a participant admitted to a room. It is owned by the
// room backend and is the source of truth for membership.
type UserParticipant struct {
	ID        ParticipantID `json:"id"`
	Name      string        `json:"name"`
	Metadata  string        `json:"metadata,omitempty"`
	Streaming bool          `json:"streaming"`
	AudioOnly bool          `json:"audioOnly,omitempty"`
}

// RoomInfo is a read-only summary for the admin API.
type RoomInfo struct {
	ID           RoomID `json:"id"`
	Participants int    `json:"participants"`
}
