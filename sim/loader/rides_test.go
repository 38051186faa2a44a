package loader

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikeshare-sim/bikeshare-sim/sim"
)

func testStations() map[sim.StationID]*sim.Station {
	return map[sim.StationID]*sim.Station{
		"7000": sim.NewStation("7000", "A", sim.Point{}, 10, 5),
		"7001": sim.NewStation("7001", "B", sim.Point{}, 10, 5),
	}
}

func TestParseTime_SingleDigitHour(t *testing.T) {
	got, err := ParseTime("2017-06-01 8:05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2017, 6, 1, 8, 5, 0, 0, time.UTC), got)
}

func TestReadRides_DropsUnknownStationsAndRenumbers(t *testing.T) {
	csv := strings.Join([]string{
		"2017-06-01 08:00,7000,2017-06-01 08:05,7001",
		"2017-06-01 08:01,9999,2017-06-01 08:09,7001",
		"2017-06-01 08:02,7001,2017-06-01 08:10,8888",
		"2017-06-01 08:03,7001,2017-06-01 08:12,7000,extra,columns",
	}, "\n")

	rides, err := ReadRides(strings.NewReader(csv), testStations())
	require.NoError(t, err)
	require.Len(t, rides, 2)

	assert.Equal(t, sim.RideID(0), rides[0].ID)
	assert.Equal(t, sim.StationID("7000"), rides[0].StartStation)
	assert.Equal(t, sim.StationID("7001"), rides[0].EndStation)
	assert.Equal(t, time.Date(2017, 6, 1, 8, 0, 0, 0, time.UTC), rides[0].StartTime)
	assert.Equal(t, time.Date(2017, 6, 1, 8, 5, 0, 0, time.UTC), rides[0].EndTime)

	assert.Equal(t, sim.RideID(1), rides[1].ID)
	assert.Equal(t, sim.StationID("7001"), rides[1].StartStation)
}

func TestReadRides_BadTimestamp_IsError(t *testing.T) {
	_, err := ReadRides(strings.NewReader("2017/06/01 08:00,7000,2017-06-01 08:05,7001\n"), testStations())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestReadRides_ShortRow_IsError(t *testing.T) {
	_, err := ReadRides(strings.NewReader("2017-06-01 08:00,7000,2017-06-01 08:05\n"), testStations())
	assert.Error(t, err)
}

func TestReadRides_Empty_NoRides(t *testing.T) {
	rides, err := ReadRides(strings.NewReader(""), testStations())
	require.NoError(t, err)
	assert.Empty(t, rides)
}
