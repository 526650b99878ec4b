package app

import (
	"fmt"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
)

type BackpressureAction int

const (
	DropNotification BackpressureAction = iota
	KickMember
)

// Policy decides what happens to a member whose signaling queue is full.
type Policy interface {
	OnBackPressure(room domain.RoomID, cid core.ConnectionID) BackpressureAction
}

// SimplePolicy evicts every member that cannot keep up.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.RoomID, core.ConnectionID) BackpressureAction {
	return KickMember
}

// LenientPolicy drops the notification and keeps the member.
type LenientPolicy struct{}

func (LenientPolicy) OnBackPressure(domain.RoomID, core.ConnectionID) BackpressureAction {
	return DropNotification
}

// PolicyByName resolves the backpressure_policy setting: "kick" or "drop".
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "kick":
		return SimplePolicy{}, nil
	case "drop":
		return LenientPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown backpressure policy %q", name)
}
