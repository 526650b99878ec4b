package sfu

import (
	"context"
	"maps"
	"sync"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog"
)

// Relay fans one published track out to its subscribers. Subscribers may
// attach before the source track arrives.
type Relay struct {
	mu     sync.RWMutex
	src    *webrtc.TrackRemote
	subs   map[core.ConnectionID]*Subscription
	cancel context.CancelFunc
}

func NewRelay() *Relay {
	return &Relay{subs: make(map[core.ConnectionID]*Subscription)}
}

func (r *Relay) Src() *webrtc.TrackRemote {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.src
}

// loop reads RTP packets from the source track and forwards them to every subscription.
func (r *Relay) loop(ctx context.Context, src *webrtc.TrackRemote, logger *zerolog.Logger) {
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("relay ctx done")
			return
		default:
		}
		pkt, _, err := src.ReadRTP()
		if err != nil {
			logger.Debug().Err(err).Msg("relay read RTP error, stopping")
			// a replaced source must not tear down the new one's subscribers
			if r.Src() == src {
				r.detachAll()
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
		r.forward(pkt, logger)
	}
}

func (r *Relay) forward(pkt *rtp.Packet, logger *zerolog.Logger) {
	r.mu.RLock()
	snapshot := maps.Clone(r.subs)
	r.mu.RUnlock()

	var gone []core.ConnectionID
	for dst, sub := range snapshot {
		if sub.Detached() {
			gone = append(gone, dst)
			continue
		}
		if err := sub.deliver(pkt); err != nil {
			logger.Warn().Err(err).Str("dst_cid", string(dst)).Msg("subscriber write failed, detaching")
			gone = append(gone, dst)
		}
	}
	if len(gone) > 0 {
		r.dropDetached(gone)
	}
}

func (r *Relay) dropDetached(cids []core.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cid := range cids {
		if sub, ok := r.subs[cid]; ok && sub.Detached() {
			delete(r.subs, cid)
		}
	}
}

func (r *Relay) detachAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.subs {
		sub.Detach()
	}
}

// Attach replaces any previous subscription of the same subscriber.
func (r *Relay) Attach(sub *Subscription) {
	r.mu.Lock()
	prev := r.subs[sub.Subscriber]
	r.subs[sub.Subscriber] = sub
	r.mu.Unlock()
	if prev != nil {
		prev.Detach()
	}
}

func (r *Relay) subscription(dst core.ConnectionID) (*Subscription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subs[dst]
	return sub, ok
}

func (r *Relay) stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	r.detachAll()
}
