package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "trading_game"

// Offer outcomes.
const (
	OfferSubmitted   = "submitted"
	OfferCancelled   = "cancelled"
	OfferRejected    = "rejected"
	OfferInvalidated = "invalidated"
	OfferAccepted    = "accepted"
)

// Metrics groups the server's collectors. All methods accept a nil receiver.
type Metrics struct {
	rooms        *prometheus.GaugeVec
	connections  prometheus.Gauge
	offers       *prometheus.CounterVec
	chatMessages prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rooms: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms",
			Help:      "Live rooms by state.",
		}, []string{"state"}),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Open WebSocket connections.",
		}),
		offers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_total",
			Help:      "Trade offers by outcome.",
		}, []string{"outcome"}),
		chatMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_messages_total",
			Help:      "Chat messages relayed.",
		}),
	}
	reg.MustRegister(m.rooms, m.connections, m.offers, m.chatMessages)
	return m
}

func (m *Metrics) SetRooms(filling, active int) {
	if m == nil {
		return
	}
	m.rooms.WithLabelValues("filling").Set(float64(filling))
	m.rooms.WithLabelValues("active").Set(float64(active))
}

func (m *Metrics) ConnectionOpened() {
	if m == nil {
		return
	}
	m.connections.Inc()
}

func (m *Metrics) ConnectionClosed() {
	if m == nil {
		return
	}
	m.connections.Dec()
}

func (m *Metrics) Offer(outcome string) {
	if m == nil {
		return
	}
	m.offers.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ChatMessage() {
	if m == nil {
		return
	}
	m.chatMessages.Inc()
}
