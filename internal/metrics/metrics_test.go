package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordIngest(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordIngest(272, 0.8)
	})
}

func TestRecordEdgesDetected(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordEdgesDetected(12)
	})
}

func TestUpdateTeamsRated(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name  string
		count int
	}{
		{
			name:  "full league",
			count: 32,
		},
		{
			name:  "partial history",
			count: 8,
		},
		{
			name:  "empty state",
			count: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateTeamsRated(tt.count)
			})
		})
	}
}

func TestUpdateConsensusEntries(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		UpdateConsensusEntries(16)
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func BenchmarkRecordIngest(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordIngest(272, 0.8)
	}
}
