// Package loader reads station and ride data into sim records.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bikeshare-sim/bikeshare-sim/sim"
)

// ErrMalformedStation is wrapped by every station-record error.
var ErrMalformedStation = errors.New("malformed station record")

// field accepts a JSON string or number and keeps its text.
type field string

func (f *field) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = field(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = field(n)
	return nil
}

// stationRecord is one entry of the station file. Field names follow the
// bike-share feed: n=id, s=name, la/lo=position, da=docked bikes, ba=free docks.
type stationRecord struct {
	ID        *field `json:"n"`
	Name      *field `json:"s"`
	Latitude  *field `json:"la"`
	Longitude *field `json:"lo"`
	Bikes     *field `json:"da"`
	FreeDocks *field `json:"ba"`
}

type stationFile struct {
	Stations []stationRecord `json:"stations"`
}

// LoadStations reads the station JSON file at path.
func LoadStations(path string) (map[sim.StationID]*sim.Station, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening station file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadStations(file)
}

// ReadStations decodes stations from r, keyed by id. Capacity is the sum of
// docked bikes and free docks. Any missing or unparseable field is an error.
func ReadStations(r io.Reader) (map[sim.StationID]*sim.Station, error) {
	var raw stationFile
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing station file: %w", err)
	}
	if raw.Stations == nil {
		return nil, fmt.Errorf("%w: missing \"stations\" list", ErrMalformedStation)
	}

	stations := make(map[sim.StationID]*sim.Station, len(raw.Stations))
	for i, rec := range raw.Stations {
		s, err := rec.toStation()
		if err != nil {
			return nil, fmt.Errorf("station %d: %w", i, err)
		}
		if _, dup := stations[s.ID]; dup {
			return nil, fmt.Errorf("station %d: %w: duplicate id %q", i, ErrMalformedStation, s.ID)
		}
		stations[s.ID] = s
	}
	return stations, nil
}

func (rec stationRecord) toStation() (*sim.Station, error) {
	id, err := required("n", rec.ID)
	if err != nil {
		return nil, err
	}
	name, err := required("s", rec.Name)
	if err != nil {
		return nil, err
	}
	lat, err := parseFloat("la", rec.Latitude)
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat("lo", rec.Longitude)
	if err != nil {
		return nil, err
	}
	bikes, err := parseCount("da", rec.Bikes)
	if err != nil {
		return nil, err
	}
	free, err := parseCount("ba", rec.FreeDocks)
	if err != nil {
		return nil, err
	}
	return sim.NewStation(sim.StationID(id), name, sim.Point{Lon: lon, Lat: lat}, bikes+free, bikes), nil
}

func required(key string, f *field) (string, error) {
	if f == nil || strings.TrimSpace(string(*f)) == "" {
		return "", fmt.Errorf("%w: missing %q", ErrMalformedStation, key)
	}
	return string(*f), nil
}

func parseFloat(key string, f *field) (float64, error) {
	s, err := required(key, f)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedStation, key, err)
	}
	return v, nil
}

func parseCount(key string, f *field) (int, error) {
	s, err := required(key, f)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedStation, key, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %q is negative (%d)", ErrMalformedStation, key, v)
	}
	return v, nil
}
