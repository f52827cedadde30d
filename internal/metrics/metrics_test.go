package metrics

import (
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestRegisterIsIdempotent(t *testing.T) {
	reg := prom.NewRegistry()
	require.NoError(t, Register(reg))
	require.NoError(t, Register(reg))

	RefreshCounter.WithLabelValues("land", ResultOK).Inc()
	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(t, names, "balance_register_refresh_total")
}
