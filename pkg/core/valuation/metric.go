package valuation

import (
	"encoding/json"
	"fmt"
)

// Metric is a valuation figure that may be mathematically undefined for
// the given inputs (per-share value with zero shares, DDM price when
// ke <= g, a sensitivity cell where WACC <= g). An invalid Metric is an
// explicit "not applicable" marker, distinct from a real zero, and
// marshals to JSON null.
type Metric struct {
	Value float64
	Valid bool
}

// Some wraps a defined value.
func Some(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// NA is the not-applicable marker.
func NA() Metric {
	return Metric{}
}

func (m Metric) String() string {
	if !m.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", m.Value)
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = NA()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Some(v)
	return nil
}
