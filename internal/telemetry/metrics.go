// Package telemetry exposes prometheus metrics for the signaling server.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "roomsignal"

var (
	promRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc",
		Name:      "requests_total",
	}, []string{"method", "status"})
	promRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rpc",
		Name:      "request_duration_seconds",
		Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 2, 5},
	}, []string{"method"})
	promDepartures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "participant",
		Name:      "departures_total",
	}, []string{"reason"})
	promRooms = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "room",
		Name:      "total",
	})
	promParticipants = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "participant",
		Name:      "total",
	})
	promMessages = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "room",
		Name:      "messages_total",
	})
	promConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "signal",
		Name:      "connections",
	})
)

func init() {
	prometheus.MustRegister(promRequests, promRequestDuration, promDepartures, promRooms, promParticipants, promMessages, promConnections)
}

// ObserveRequest records one handled command. status is "ok" or an error kind.
func ObserveRequest(method, status string, elapsed time.Duration) {
	promRequests.WithLabelValues(method, status).Inc()
	promRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Departure counts a participant leaving a room ("left", "evicted", "backpressure").
func Departure(reason string) {
	promDepartures.WithLabelValues(reason).Inc()
}

func RoomOpened()        { promRooms.Inc() }
func RoomClosed()        { promRooms.Dec() }
func ParticipantJoined() { promParticipants.Inc() }
func ParticipantLeft()   { promParticipants.Dec() }
func MessageSent()       { promMessages.Inc() }
func ConnectionOpened()  { promConnections.Inc() }
func ConnectionClosed()  { promConnections.Dec() }
