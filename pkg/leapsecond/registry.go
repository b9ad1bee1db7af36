package leapsecond

import (
	"sync/atomic"

	"github.com/BYTE-6D65/timescale/pkg/telemetry"
)

// Registry publishes the process-wide leap-second table. Tables are
// immutable, so publication is a single atomic pointer swap: in-flight
// readers keep the snapshot they loaded and never observe a partially
// built table. A failed reload leaves the previous table in place.
type Registry struct {
	current atomic.Pointer[Table]
	metrics *telemetry.Metrics
}

// NewRegistry creates a registry serving the given initial table.
// A nil initial table is treated as Disabled().
func NewRegistry(initial *Table, metrics *telemetry.Metrics) *Registry {
	r := &Registry{metrics: metrics}
	if initial == nil {
		initial = Disabled()
	}
	r.current.Store(initial)
	metrics.RecordReload(true, initial.Count())
	return r
}

// Current returns the active table snapshot. Callers should hold on to
// the returned pointer for the duration of a logical operation rather
// than re-fetching mid-way, so one operation sees one table.
func (r *Registry) Current() *Table {
	return r.current.Load()
}

// Reload builds a fresh table from the provider and publishes it. On
// error the active table is left untouched.
func (r *Registry) Reload(p Provider) error {
	table, err := FromProvider(p)
	if err != nil {
		r.metrics.RecordReload(false, 0)
		return err
	}
	r.current.Store(table)
	r.metrics.RecordReload(true, table.Count())
	return nil
}
