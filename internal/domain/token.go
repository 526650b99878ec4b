package domain

type Role string

const (
	RoleSubscriber Role = "SUBSCRIBER"
	RolePublisher  Role = "PUBLISHER"
	RoleModerator  Role = "MODERATOR"
)

func (r Role) CanPublish() bool {
	return r == RolePublisher || r == RoleModerator
}

func (r Role) Valid() bool {
	switch r {
	case RoleSubscriber, RolePublisher, RoleModerator:
		return true
	}
	return false
}

// Token is a per-room credential issued by the admin API.
type Token struct {
	Value          string `json:"token"`
	RoomID         RoomID `json:"session"`
	Role           Role   `json:"role"`
	ServerData     string `json:"data,omitempty"`
	ClientMetadata string `json:"-"`
	UserName       string `json:"-"`
}
