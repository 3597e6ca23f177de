package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WalletMetrics records counters for money movement across the platform.
type WalletMetrics struct {
	ledgerApplies *prometheus.CounterVec
	transfers     *prometheus.CounterVec
	exchanges     *prometheus.CounterVec
	orderEvents   *prometheus.CounterVec
}

// NewWalletMetrics registers the wallet metrics on the provided registerer.
// A nil registerer yields a no-op instance, which keeps tests quiet.
func NewWalletMetrics(reg prometheus.Registerer) *WalletMetrics {
	if reg == nil {
		return &WalletMetrics{}
	}
	ledgerApplies := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_applies_total",
		Help: "Ledger entry batches applied, by outcome.",
	}, []string{"outcome"})
	transfers := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transfers_total",
		Help: "Peer-to-peer transfers, by balance kind and outcome.",
	}, []string{"kind", "outcome"})
	exchanges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exchanges_total",
		Help: "Currency exchanges, by direction and outcome.",
	}, []string{"direction", "outcome"})
	orderEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_events_total",
		Help: "Escrow order lifecycle events, by event name.",
	}, []string{"event"})
	reg.MustRegister(ledgerApplies, transfers, exchanges, orderEvents)
	return &WalletMetrics{
		ledgerApplies: ledgerApplies,
		transfers:     transfers,
		exchanges:     exchanges,
		orderEvents:   orderEvents,
	}
}

// IncLedgerApply increments the ledger apply counter for the given outcome.
func (m *WalletMetrics) IncLedgerApply(outcome string) {
	if m == nil || m.ledgerApplies == nil {
		return
	}
	m.ledgerApplies.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncTransfer increments the transfer counter for the kind/outcome pair.
func (m *WalletMetrics) IncTransfer(kind, outcome string) {
	if m == nil || m.transfers == nil {
		return
	}
	m.transfers.WithLabelValues(normalizeLabel(kind), normalizeLabel(outcome)).Inc()
}

// IncExchange increments the exchange counter for the direction/outcome pair.
func (m *WalletMetrics) IncExchange(direction, outcome string) {
	if m == nil || m.exchanges == nil {
		return
	}
	m.exchanges.WithLabelValues(normalizeLabel(direction), normalizeLabel(outcome)).Inc()
}

// IncOrderEvent increments the order event counter for the named event.
func (m *WalletMetrics) IncOrderEvent(event string) {
	if m == nil || m.orderEvents == nil {
		return
	}
	m.orderEvents.WithLabelValues(normalizeLabel(event)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
