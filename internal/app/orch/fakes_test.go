package orch

import (
	"context"
	"sync"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/pion/webrtc/v4"
)

type note struct {
	cid    core.ConnectionID
	method string
	params any
}

type fakeNotifier struct {
	mu    sync.Mutex
	notes []note
	slow  map[core.ConnectionID]bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{slow: make(map[core.ConnectionID]bool)}
}

func (n *fakeNotifier) Notify(cid core.ConnectionID, method string, params any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.slow[cid] {
		return core.ErrBackpressure
	}
	n.notes = append(n.notes, note{cid: cid, method: method, params: params})
	return nil
}

func (n *fakeNotifier) setSlow(cid core.ConnectionID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.slow[cid] = true
}

// received returns the notifications of method delivered to cid.
func (n *fakeNotifier) received(cid core.ConnectionID, method string) []any {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []any
	for _, nt := range n.notes {
		if nt.cid == cid && nt.method == method {
			out = append(out, nt.params)
		}
	}
	return out
}

type fakeMedia struct {
	mu         sync.Mutex
	cid        core.ConnectionID
	endpoint   string
	closed     bool
	tracks     []*webrtc.TrackLocalStaticRTP
	candidates []webrtc.ICECandidateInit
	onClosed   func()
	answerErr  error
}

func (m *fakeMedia) Start(context.Context) error { return nil }

func (m *fakeMedia) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	cb := m.onClosed
	m.mu.Unlock()
	if cb != nil {
		cb()
	}
}

func (m *fakeMedia) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *fakeMedia) AddICECandidate(c webrtc.ICECandidateInit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidates = append(m.candidates, c)
	return nil
}

func (m *fakeMedia) ApplyOfferAndCreateAnswer(offer webrtc.SessionDescription) (*webrtc.SessionDescription, error) {
	if m.answerErr != nil {
		return nil, m.answerErr
	}
	return &webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: "answer:" + offer.SDP}, nil
}

func (m *fakeMedia) OnTrack(func(context.Context, *webrtc.TrackRemote, *webrtc.RTPReceiver)) {}

func (m *fakeMedia) AddLocalTrack(track *webrtc.TrackLocalStaticRTP) (*webrtc.RTPSender, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracks = append(m.tracks, track)
	return nil, nil
}

func (m *fakeMedia) OnClosed(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClosed = fn
}

func (m *fakeMedia) trackCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tracks)
}

func (m *fakeMedia) candidateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.candidates)
}

type fakeFactory struct {
	mu        sync.Mutex
	created   []*fakeMedia
	answerErr error
}

func (f *fakeFactory) New(cid core.ConnectionID, endpoint string) (core.MediaConnection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mc := &fakeMedia{cid: cid, endpoint: endpoint, answerErr: f.answerErr}
	f.created = append(f.created, mc)
	return mc, nil
}

func (f *fakeFactory) last() *fakeMedia {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created[len(f.created)-1]
}
