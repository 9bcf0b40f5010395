package booth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "booth_rooms_active",
		Help: "Number of live rooms.",
	})
	roomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booth_rooms_created_total",
		Help: "Total number of rooms created.",
	})
	roomsClosed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booth_rooms_closed_total",
		Help: "Total number of rooms closed, by reason.",
	}, []string{"reason"})
	signalsRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booth_signals_relayed_total",
		Help: "Total number of relayed signaling messages.",
	})
	stripsComposed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booth_strips_composed_total",
		Help: "Total number of composed photo strips.",
	})
)
