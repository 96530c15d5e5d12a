package grid

import "testing"

func TestStaggerOffsets(t *testing.T) {
	cases := []struct {
		name string
		dims []string
		x, y int
	}{
		{"unstaggered", []string{"lat", "lon"}, 0, 0},
		{"x staggered", []string{"lat", "lon_u"}, 1, 0},
		{"y staggered", []string{"lat_v", "lon"}, 0, 1},
		{"corner staggered", []string{"lat_v", "lon_u"}, 1, 1},
		{"3d level", []string{"level", "lat", "lon_u"}, 1, 0},
		{"4d", []string{"time", "level", "lat_v", "lon"}, 0, 1},
		{"empty", nil, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y := StaggerOffsets(c.dims)
			if x != c.x || y != c.y {
				t.Fatalf("StaggerOffsets(%v) = (%d, %d), want (%d, %d)", c.dims, x, y, c.x, c.y)
			}
		})
	}
}
