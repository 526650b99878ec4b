package sfu

import (
	"context"
	"sync"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

// RelayKey identifies one published track: the publisher's connection and the media kind.
type RelayKey struct {
	Publisher core.ConnectionID
	Kind      webrtc.RTPCodecType
}

type RelayManager struct {
	mu     sync.Mutex
	relays map[RelayKey]*Relay
}

func NewRelayManager() *RelayManager {
	return &RelayManager{
		relays: make(map[RelayKey]*Relay),
	}
}

func (m *RelayManager) relay(key RelayKey) *Relay {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.relays[key]
	if !ok {
		r = NewRelay()
		m.relays[key] = r
	}
	return r
}

// StartRelay attaches the publisher's remote track and starts forwarding.
// A relay already running for the key is restarted on the new track.
func (m *RelayManager) StartRelay(ctx context.Context, publisher core.ConnectionID, track *webrtc.TrackRemote) {
	key := RelayKey{Publisher: publisher, Kind: track.Kind()}
	logger := log.With().
		Str("module", "relay").
		Str("cid", string(publisher)).
		Str("kind", key.Kind.String()).
		Logger()

	r := m.relay(key)
	relayCtx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	if r.cancel != nil {
		logger.Info().Msg("replacing existing relay source")
		r.cancel()
	}
	r.src = track
	r.cancel = cancel
	r.mu.Unlock()

	logger.Info().Msg("starting relay loop")
	go r.loop(relayCtx, track, &logger)
}

// AddSubscriber attaches a subscriber track to the publisher's relay of that kind.
func (m *RelayManager) AddSubscriber(publisher, subscriber core.ConnectionID, kind webrtc.RTPCodecType, track RTPWriter) {
	m.relay(RelayKey{Publisher: publisher, Kind: kind}).Attach(newSubscription(subscriber, track))
}

// DetachSubscriber detaches subscriber from every relay of publisher.
func (m *RelayManager) DetachSubscriber(publisher, subscriber core.ConnectionID) {
	m.detach(subscriber, func(k RelayKey) bool { return k.Publisher == publisher })
}

// DropSubscriber detaches subscriber from every relay.
func (m *RelayManager) DropSubscriber(subscriber core.ConnectionID) {
	m.detach(subscriber, func(RelayKey) bool { return true })
}

func (m *RelayManager) detach(subscriber core.ConnectionID, match func(RelayKey) bool) {
	for _, r := range m.relaysOf(match) {
		if sub, ok := r.subscription(subscriber); ok && !sub.Detached() {
			sub.Detach()
			log.Debug().Str("module", "relay").Str("cid", string(subscriber)).
				Uint64("forwarded", sub.Forwarded()).Msg("subscription detached")
		}
	}
}

// StopRelay stops all relays of publisher and removes them from the manager.
func (m *RelayManager) StopRelay(publisher core.ConnectionID) {
	m.mu.Lock()
	stopped := make([]*Relay, 0, 2)
	for k, r := range m.relays {
		if k.Publisher == publisher {
			stopped = append(stopped, r)
			delete(m.relays, k)
		}
	}
	m.mu.Unlock()
	for _, r := range stopped {
		r.stop()
	}
}

// HasRelay reports whether a source track is attached for the key.
func (m *RelayManager) HasRelay(key RelayKey) bool {
	m.mu.Lock()
	r, ok := m.relays[key]
	m.mu.Unlock()
	return ok && r.Src() != nil
}

func (m *RelayManager) relaysOf(match func(RelayKey) bool) []*Relay {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Relay, 0, len(m.relays))
	for k, r := range m.relays {
		if match(k) {
			out = append(out, r)
		}
	}
	return out
}
