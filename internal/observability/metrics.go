package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cory-johannsen/armory/internal/game/attachment"
)

const (
	metricNameAttachmentLookups = "attachment_lookups_total"
	helpTextAttachmentLookups   = "Total number of attachment name lookups by result"

	labelResult = "result"
	resultHit   = "hit"
	resultMiss  = "miss"
)

// LookupMetrics counts attachment name lookups.
type LookupMetrics struct {
	lookups *prometheus.CounterVec
}

// NewLookupMetrics registers the lookup counters on reg.
//
// Postcondition: Returns a LookupMetrics or the registration error.
func NewLookupMetrics(reg prometheus.Registerer) (*LookupMetrics, error) {
	lookups := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricNameAttachmentLookups,
			Help: helpTextAttachmentLookups,
		},
		[]string{labelResult},
	)
	if err := reg.Register(lookups); err != nil {
		return nil, err
	}
	return &LookupMetrics{lookups: lookups}, nil
}

// Lookup resolves name against src with attachment.TryParse and records
// whether it hit.
func (m *LookupMetrics) Lookup(src attachment.Source, name string) (attachment.Identifier, bool) {
	id, ok := attachment.TryParse(src, name)
	if ok {
		m.lookups.WithLabelValues(resultHit).Inc()
	} else {
		m.lookups.WithLabelValues(resultMiss).Inc()
	}
	return id, ok
}
