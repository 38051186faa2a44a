// Computes the extremal-station report at the end of a run.

package sim

import (
	"fmt"
	"io"
)

// Statistic keys returned by CalculateStatistics.
const (
	StatMaxStart               = "max_start"
	StatMaxEnd                 = "max_end"
	StatMaxTimeLowAvailability = "max_time_low_availability"
	StatMaxTimeLowUnoccupied   = "max_time_low_unoccupied"
)

// StatisticKeys lists the report keys in print order.
var StatisticKeys = []string{StatMaxStart, StatMaxEnd, StatMaxTimeLowAvailability, StatMaxTimeLowUnoccupied}

// StationStat names the station holding an extremal value.
type StationStat struct {
	Name  string
	Value float64
}

// Statistics maps each report key to its extremal station.
type Statistics map[string]StationStat

// CalculateStatistics returns, for each tracked quantity, the station with
// the maximum value. Ties go to the lexicographically smallest name. It
// reads the stations only. An empty input yields an empty map.
func CalculateStatistics(stations []*Station) Statistics {
	stats := make(Statistics, len(StatisticKeys))
	if len(stations) == 0 {
		return stats
	}
	stats[StatMaxStart] = maxStation(stations, func(s *Station) float64 { return float64(s.StartingRides) })
	stats[StatMaxEnd] = maxStation(stations, func(s *Station) float64 { return float64(s.EndingRides) })
	stats[StatMaxTimeLowAvailability] = maxStation(stations, func(s *Station) float64 { return s.LowAvailabilityTime })
	stats[StatMaxTimeLowUnoccupied] = maxStation(stations, func(s *Station) float64 { return s.LowUnoccupiedTime })
	return stats
}

func maxStation(stations []*Station, value func(*Station) float64) StationStat {
	best := stations[0]
	for _, s := range stations[1:] {
		v, bv := value(s), value(best)
		if v > bv || (v == bv && s.Name < best.Name) {
			best = s
		}
	}
	return StationStat{Name: best.Name, Value: value(best)}
}

// Print writes the report in StatisticKeys order.
func (st Statistics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Statistics ===")
	for _, key := range StatisticKeys {
		s, ok := st[key]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%-26s: %s (%g)\n", key, s.Name, s.Value)
	}
}
