package sfu

import (
	"sync/atomic"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/pion/rtp"
)

// RTPWriter is the subscriber end of a relay.
// *webrtc.TrackLocalStaticRTP satisfies it.
type RTPWriter interface {
	WriteRTP(*rtp.Packet) error
}

// Subscription is one subscriber's leg of a relay. A detached subscription
// receives nothing more and is dropped by the relay on its next packet.
type Subscription struct {
	Subscriber core.ConnectionID
	sink       RTPWriter
	detached   atomic.Bool
	forwarded  atomic.Uint64
}

func newSubscription(subscriber core.ConnectionID, sink RTPWriter) *Subscription {
	return &Subscription{Subscriber: subscriber, sink: sink}
}

func (s *Subscription) Detach() { s.detached.Store(true) }

func (s *Subscription) Detached() bool { return s.detached.Load() }

// Forwarded counts the packets written to the subscriber.
func (s *Subscription) Forwarded() uint64 { return s.forwarded.Load() }

// deliver writes pkt to the subscriber. A failing sink detaches the subscription.
func (s *Subscription) deliver(pkt *rtp.Packet) error {
	if err := s.sink.WriteRTP(pkt); err != nil {
		s.Detach()
		return err
	}
	s.forwarded.Add(1)
	return nil
}
