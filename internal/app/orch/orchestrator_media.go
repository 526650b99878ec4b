package orch

import (
	"context"
	"strings"

	"github.com/dkeye/roomsignal/internal/app"
	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/dkeye/roomsignal/internal/rpc"
	"github.com/pion/webrtc/v4"
)

func (o *Orchestrator) PublishMedia(_ context.Context, req core.ParticipantRequest, sdpOffer string, audioOnly, doLoopback bool) (string, error) {
	cid := req.ConnectionID
	m, room, err := o.member(cid)
	if err != nil {
		return "", err
	}
	if m.Streaming() {
		return "", core.NewError(core.KindMediaEndpoint, "participant %s is already publishing", m.Name)
	}
	if doLoopback {
		o.logger.Debug().Str("cid", string(cid)).Msg("loopback requested, not supported by this backend")
	}

	mc, err := o.NewMedia(cid, m.Name)
	if err != nil {
		return "", core.WrapError(core.KindMediaEndpoint, err, "unable to create publisher endpoint")
	}
	mc.OnTrack(func(trackCtx context.Context, track *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		o.Relays.StartRelay(trackCtx, cid, track)
	})
	mc.OnClosed(func() { o.onPublisherClosed(m, room.ID(), mc) })
	if err := mc.Start(o.ctx); err != nil {
		mc.Close()
		return "", core.WrapError(core.KindMediaEndpoint, err, "unable to start publisher endpoint")
	}

	answer, err := mc.ApplyOfferAndCreateAnswer(webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: sdpOffer})
	if err != nil {
		mc.Close()
		return "", core.WrapError(core.KindMediaSDP, err, "unable to process publisher offer")
	}
	m.SetPublisher(mc, audioOnly)

	o.notifyRoom(room.ID(), cid, rpc.NotifyParticipantPublished, rpc.NewParticipantInfo(m.Snapshot()))
	o.logger.Info().Str("cid", string(cid)).Str("room", string(room.ID())).Bool("audio_only", audioOnly).Msg("participant published")
	return answer.SDP, nil
}

func (o *Orchestrator) UnpublishMedia(_ context.Context, req core.ParticipantRequest) error {
	m, room, err := o.member(req.ConnectionID)
	if err != nil {
		return err
	}
	mc := m.TakePublisher()
	if mc == nil {
		return core.NewError(core.KindUserNotStreaming, "participant %s is not streaming media", m.Name)
	}
	o.teardownPublisher(m, room, mc)
	return nil
}

// onPublisherClosed unpublishes m when its endpoint died on its own.
func (o *Orchestrator) onPublisherClosed(m *app.Member, roomID domain.RoomID, mc core.MediaConnection) {
	if !m.ReleasePublisher(mc) {
		return
	}
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		o.Relays.StopRelay(m.CID)
		return
	}
	o.logger.Info().Str("cid", string(m.CID)).Msg("publisher endpoint closed")
	o.teardownPublisher(m, room, mc)
}

func (o *Orchestrator) teardownPublisher(m *app.Member, room *app.Room, mc core.MediaConnection) {
	o.Relays.StopRelay(m.CID)
	o.closeAsync(mc)
	for _, other := range room.Members() {
		if sub, ok := other.TakeSubscriber(m.Name); ok {
			o.closeAsync(sub)
		}
	}
	o.notifyRoom(room.ID(), m.CID, rpc.NotifyParticipantUnpublished, rpc.NameParams{Name: m.Name})
	o.logger.Info().Str("cid", string(m.CID)).Str("room", string(room.ID())).Msg("participant unpublished")
}

func (o *Orchestrator) Subscribe(_ context.Context, senderName, sdpOffer string, req core.ParticipantRequest) (string, error) {
	cid := req.ConnectionID
	m, room, err := o.member(cid)
	if err != nil {
		return "", err
	}
	sender, ok := room.MemberByName(senderName)
	if !ok {
		return "", core.NewError(core.KindUserNotFound, "sender %s not found in room %s", senderName, room.ID())
	}
	senderInfo := sender.Snapshot()
	if !senderInfo.Streaming {
		return "", core.NewError(core.KindUserNotStreaming, "sender %s is not streaming media", senderName)
	}
	if old, ok := m.TakeSubscriber(senderName); ok {
		o.Relays.DetachSubscriber(sender.CID, cid)
		o.closeAsync(old)
	}

	mc, err := o.NewMedia(cid, senderName)
	if err != nil {
		return "", core.WrapError(core.KindMediaEndpoint, err, "unable to create subscriber endpoint")
	}
	if err := mc.Start(o.ctx); err != nil {
		mc.Close()
		return "", core.WrapError(core.KindMediaEndpoint, err, "unable to start subscriber endpoint")
	}

	kinds := []webrtc.RTPCodecType{webrtc.RTPCodecTypeAudio}
	if !senderInfo.AudioOnly {
		kinds = append(kinds, webrtc.RTPCodecTypeVideo)
	}
	tracks := make(map[webrtc.RTPCodecType]*webrtc.TrackLocalStaticRTP, len(kinds))
	for _, kind := range kinds {
		track, err := o.addLocalTrack(mc, kind, senderName)
		if err != nil {
			mc.Close()
			return "", core.WrapError(core.KindMediaEndpoint, err, "unable to attach %s track", kind)
		}
		tracks[kind] = track
	}

	answer, err := mc.ApplyOfferAndCreateAnswer(webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: sdpOffer})
	if err != nil {
		mc.Close()
		return "", core.WrapError(core.KindMediaSDP, err, "unable to process subscriber offer")
	}

	for kind, track := range tracks {
		o.Relays.AddSubscriber(sender.CID, cid, kind, track)
	}
	m.SetSubscriber(senderName, mc)
	mc.OnClosed(func() {
		if m.ReleaseSubscriber(senderName, mc) {
			o.Relays.DetachSubscriber(sender.CID, cid)
		}
	})
	o.logger.Info().Str("cid", string(cid)).Str("sender", senderName).Msg("subscribed")
	return answer.SDP, nil
}

func (o *Orchestrator) addLocalTrack(mc core.MediaConnection, kind webrtc.RTPCodecType, senderName string) (*webrtc.TrackLocalStaticRTP, error) {
	capability := core.AudioCapability
	if kind == webrtc.RTPCodecTypeVideo {
		capability = core.VideoCapability
	}
	track, err := webrtc.NewTrackLocalStaticRTP(capability, kind.String(), domain.StreamID(senderName))
	if err != nil {
		return nil, err
	}
	sender, err := mc.AddLocalTrack(track)
	if err != nil {
		return nil, err
	}
	if sender != nil {
		go drainRTCP(sender)
	}
	return track, nil
}

// drainRTCP reads incoming RTCP so pion's interceptors keep running.
func drainRTCP(sender *webrtc.RTPSender) {
	buf := make([]byte, 1500)
	for {
		if _, _, err := sender.Read(buf); err != nil {
			return
		}
	}
}

func (o *Orchestrator) Unsubscribe(_ context.Context, senderName string, req core.ParticipantRequest) error {
	cid := req.ConnectionID
	m, room, err := o.member(cid)
	if err != nil {
		return err
	}
	mc, ok := m.TakeSubscriber(senderName)
	if !ok {
		return core.NewError(core.KindMediaEndpoint, "participant %s is not subscribed to %s", m.Name, senderName)
	}
	if sender, ok := room.MemberByName(senderName); ok {
		o.Relays.DetachSubscriber(sender.CID, cid)
	}
	o.closeAsync(mc)
	o.logger.Info().Str("cid", string(cid)).Str("sender", senderName).Msg("unsubscribed")
	return nil
}

// OnIceCandidate routes a remote candidate to the endpoint named by
// endpointName: the participant's own name for its publisher, a sender's
// name for a subscription. A stream suffix ("alice_webcam") is ignored.
func (o *Orchestrator) OnIceCandidate(_ context.Context, endpointName, candidate string, sdpMLineIndex int, sdpMid string, req core.ParticipantRequest) error {
	m, _, err := o.member(req.ConnectionID)
	if err != nil {
		return err
	}
	name, _, _ := strings.Cut(endpointName, domain.StreamSeparator)

	var mc core.MediaConnection
	if name == m.Name {
		mc = m.Publisher()
	}
	if mc == nil {
		mc, _ = m.Subscriber(name)
	}
	if mc == nil {
		return core.NewError(core.KindMediaEndpoint, "no endpoint %s for participant %s", endpointName, m.Name)
	}

	idx := uint16(sdpMLineIndex)
	ice := webrtc.ICECandidateInit{Candidate: candidate, SDPMid: &sdpMid, SDPMLineIndex: &idx}
	if err := mc.AddICECandidate(ice); err != nil {
		return core.WrapError(core.KindMediaEndpoint, err, "unable to add ICE candidate to %s", endpointName)
	}
	return nil
}
