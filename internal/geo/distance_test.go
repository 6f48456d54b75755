package geo

import (
	"math"
	"testing"

	"ghost-flight/internal/models"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	points := []models.Coordinates{
		{Lat: 0, Lon: 0},
		{Lat: 19.4361, Lon: -99.0719},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 89.9, Lon: 179.9},
	}

	for _, p := range points {
		if d := Distance(p, p); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistance_Commutative(t *testing.T) {
	pairs := [][2]models.Coordinates{
		{{Lat: 19.43, Lon: -99.13}, {Lat: 20.00, Lon: -99.90}},
		{{Lat: 25.9066, Lon: -97.4251}, {Lat: 21.0365, Lon: -86.8771}},
		{{Lat: -10, Lon: 170}, {Lat: 10, Lon: -170}},
	}

	for _, pair := range pairs {
		ab := Distance(pair[0], pair[1])
		ba := Distance(pair[1], pair[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Distance not commutative: %v vs %v", ab, ba)
		}
	}
}

func TestDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		a, b     models.Coordinates
		expected float64
		tol      float64
	}{
		{
			name:     "one degree of latitude",
			a:        models.Coordinates{Lat: 0, Lon: 0},
			b:        models.Coordinates{Lat: 1, Lon: 0},
			expected: EarthRadiusKm * math.Pi / 180,
			tol:      1e-6,
		},
		{
			name:     "mexico city to toluca region",
			a:        models.Coordinates{Lat: 19.43, Lon: -99.13},
			b:        models.Coordinates{Lat: 20.00, Lon: -99.90},
			expected: 102.5,
			tol:      1.0,
		},
		{
			name:     "antipodal on equator",
			a:        models.Coordinates{Lat: 0, Lon: 0},
			b:        models.Coordinates{Lat: 0, Lon: 180},
			expected: EarthRadiusKm * math.Pi,
			tol:      1e-6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.expected) > tt.tol {
				t.Errorf("Distance = %v, want %v ± %v", got, tt.expected, tt.tol)
			}
		})
	}
}

func TestPathLength(t *testing.T) {
	a := models.Coordinates{Lat: 0, Lon: 0}
	b := models.Coordinates{Lat: 1, Lon: 0}
	c := models.Coordinates{Lat: 2, Lon: 0}

	if got := PathLength(nil); got != 0 {
		t.Errorf("PathLength(nil) = %v, want 0", got)
	}
	if got := PathLength([]models.Coordinates{a}); got != 0 {
		t.Errorf("PathLength(single) = %v, want 0", got)
	}

	want := Distance(a, b) + Distance(b, c)
	if got := PathLength([]models.Coordinates{a, b, c}); math.Abs(got-want) > 1e-9 {
		t.Errorf("PathLength = %v, want %v (no wraparound)", got, want)
	}
}
