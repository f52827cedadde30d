package metrics

import prom "github.com/prometheus/client_golang/prometheus"

const (
	Namespace = "balance_register"

	LabelAsset  = "asset"
	LabelMethod = "method"
	LabelResult = "result"

	ResultOK       = "ok"
	ResultError    = "error"
	ResultRejected = "rejected"
)

var DefBuckets = []float64{1, 5, 15, 30, 60, 120, 300, 600}

var (
	RefreshCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Name:      "refresh_total",
			Help:      "Total number of balance refreshes per asset class.",
		},
		[]string{LabelAsset, LabelResult})

	ToggleCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Name:      "toggle_total",
			Help:      "Total number of registration toggles per asset class.",
		},
		[]string{LabelAsset, LabelMethod, LabelResult})

	ToggleHistogram = prom.NewHistogramVec(
		prom.HistogramOpts{
			Namespace: Namespace,
			Name:      "toggle_seconds",
			Help:      "Histogram of toggle latency from submission to confirmation.",
			Buckets:   DefBuckets,
		},
		[]string{LabelAsset, LabelMethod})

	RegisteredGauge = prom.NewGaugeVec(
		prom.GaugeOpts{
			Namespace: Namespace,
			Name:      "registered",
			Help:      "1 when the asset class balance is registered, 0 otherwise.",
		},
		[]string{LabelAsset})
)

// Collectors lists everything this package exports.
func Collectors() []prom.Collector {
	return []prom.Collector{RefreshCounter, ToggleCounter, ToggleHistogram, RegisteredGauge}
}

// Register adds the collectors to reg, ignoring ones already registered.
func Register(reg prom.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prom.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}
