package utils

import (
	"math"
	"testing"
)

func TestHaversineKnownDistances(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
		tolKm                  float64
	}{
		{"same point", -23.5505, -46.6333, -23.5505, -46.6333, 0, 1e-9},
		{"one degree of longitude at the equator", 0, 0, 0, 1, 111.195, 0.01},
		{"one degree of latitude", 10, 20, 11, 20, 111.195, 0.01},
		{"sao paulo to rio", -23.5505, -46.6333, -22.9068, -43.1729, 361, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HaversineKm(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if math.Abs(got-tc.wantKm) > tc.tolKm {
				t.Errorf("HaversineKm = %v, want %v within %v", got, tc.wantKm, tc.tolKm)
			}
		})
	}
}

func TestHaversineSymmetry(t *testing.T) {
	a := HaversineKm(-23.5505, -46.6333, 40.7128, -74.0060)
	b := HaversineKm(40.7128, -74.0060, -23.5505, -46.6333)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", a, b)
	}
}

func TestValidCoordinates(t *testing.T) {
	valid := [][2]float64{{0, 0}, {90, 180}, {-90, -180}, {-23.5505, -46.6333}}
	for _, p := range valid {
		if !ValidCoordinates(p[0], p[1]) {
			t.Errorf("ValidCoordinates(%v, %v) = false, want true", p[0], p[1])
		}
	}

	invalid := [][2]float64{{90.1, 0}, {-90.1, 0}, {0, 180.1}, {0, -180.1}}
	for _, p := range invalid {
		if ValidCoordinates(p[0], p[1]) {
			t.Errorf("ValidCoordinates(%v, %v) = true, want false", p[0], p[1])
		}
	}
}
