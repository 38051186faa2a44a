package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bikeshare-sim/bikeshare-sim/sim"
)

// rideColumns is the minimum row width: start_time, start_id, end_time, end_id.
const rideColumns = 4

// ParseTime parses a timestamp in sim.TimeLayout, in UTC.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(sim.TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", s, err)
	}
	return t, nil
}

// LoadRides reads the ride CSV file at path.
func LoadRides(path string, stations map[sim.StationID]*sim.Station) ([]*sim.Ride, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ride file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadRides(file, stations)
}

// ReadRides decodes rides from r in file order. Rides whose start or end
// station is not in stations are dropped; an unparseable timestamp is an
// error. Kept rides get dense ids in order.
func ReadRides(r io.Reader, stations map[sim.StationID]*sim.Station) ([]*sim.Ride, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var rides []*sim.Ride
	dropped := 0
	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ride row %d: %w", line, err)
		}
		if len(row) < rideColumns {
			return nil, fmt.Errorf("ride row %d has %d columns, expected at least %d", line, len(row), rideColumns)
		}

		start, err := ParseTime(row[0])
		if err != nil {
			return nil, fmt.Errorf("ride row %d: %w", line, err)
		}
		end, err := ParseTime(row[2])
		if err != nil {
			return nil, fmt.Errorf("ride row %d: %w", line, err)
		}
		startID := sim.StationID(strings.TrimSpace(row[1]))
		endID := sim.StationID(strings.TrimSpace(row[3]))
		if stations[startID] == nil || stations[endID] == nil {
			logrus.Debugf("dropping ride row %d: unknown station (%q -> %q)", line, startID, endID)
			dropped++
			continue
		}

		rides = append(rides, &sim.Ride{
			ID:           sim.RideID(len(rides)),
			StartStation: startID,
			EndStation:   endID,
			StartTime:    start,
			EndTime:      end,
		})
	}
	if dropped > 0 {
		logrus.Infof("dropped %d rides referencing unknown stations", dropped)
	}
	return rides, nil
}
