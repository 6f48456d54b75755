package flights

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"ghost-flight/internal/models"
)

// Positions of fields inside an OpenSky state vector
const (
	stateICAO24        = 0
	stateCallsign      = 1
	stateOriginCountry = 2
	stateLongitude     = 5
	stateLatitude      = 6
	stateBaroAltitude  = 7
	stateVelocity      = 9
	stateTrueTrack     = 10
)

type statesResponse struct {
	Time   int64           `json:"time"`
	States [][]interface{} `json:"states"`
}

// DecodeStates parses an OpenSky /states/all response. Rows without a
// usable position are dropped; other non-numeric fields are left nil.
func DecodeStates(r io.Reader) ([]models.Flight, error) {
	var resp statesResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode states: %w", err)
	}

	flights := make([]models.Flight, 0, len(resp.States))
	for _, row := range resp.States {
		if f, ok := flightFromState(row); ok {
			flights = append(flights, f)
		}
	}
	return flights, nil
}

func flightFromState(row []interface{}) (models.Flight, bool) {
	lat := numberAt(row, stateLatitude)
	lon := numberAt(row, stateLongitude)
	if lat == nil || lon == nil {
		return models.Flight{}, false
	}

	callsign := strings.TrimSpace(stringAt(row, stateCallsign))
	display := callsign
	if display == "" {
		display = "N/A"
	}

	return models.Flight{
		ICAO24:        strings.TrimSpace(stringAt(row, stateICAO24)),
		Callsign:      display,
		OriginCountry: stringAt(row, stateOriginCountry),
		Latitude:      lat,
		Longitude:     lon,
		Altitude:      numberAt(row, stateBaroAltitude),
		Velocity:      numberAt(row, stateVelocity),
		Heading:       numberAt(row, stateTrueTrack),
		Type:          Classify(callsign),
	}, true
}

func stringAt(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return s
}

// numberAt coerces a field to a finite number. NaN and Inf, which
// ParseFloat accepts from strings, count as absent.
func numberAt(row []interface{}, i int) *float64 {
	if i >= len(row) {
		return nil
	}
	var f float64
	switch v := row[i].(type) {
	case float64:
		f = v
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return nil
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = n
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
