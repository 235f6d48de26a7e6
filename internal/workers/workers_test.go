package workers

import (
	"runtime"
	"testing"
)

func TestCount(t *testing.T) {
	available := runtime.GOMAXPROCS(0)

	tests := []struct {
		name       string
		multiplier float64
		limit      int
		want       int
	}{
		{
			name:       "cpu bound",
			multiplier: 1.0,
			limit:      0,
			want:       available,
		},
		{
			name:       "io bound doubles",
			multiplier: 2.0,
			limit:      0,
			want:       available * 2,
		},
		{
			name:       "limit caps result",
			multiplier: 2.0,
			limit:      1,
			want:       1,
		},
		{
			name:       "tiny multiplier floors at one",
			multiplier: 0.0001,
			limit:      0,
			want:       1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.multiplier, tt.limit); got != tt.want {
				t.Errorf("Count(%v, %d) = %d, want %d", tt.multiplier, tt.limit, got, tt.want)
			}
		})
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("STORE_WORKERS", "3")

	if got := Count(1.0, 0); got != 3 {
		t.Errorf("Count() with STORE_WORKERS=3 = %d, want 3", got)
	}
	if got := Count(1.0, 2); got != 2 {
		t.Errorf("Count() with STORE_WORKERS=3 and limit 2 = %d, want 2", got)
	}
}

func TestEnvOverrideInvalid(t *testing.T) {
	t.Setenv("STORE_WORKERS", "not-a-number")

	want := runtime.GOMAXPROCS(0)
	if got := Count(1.0, 0); got != want {
		t.Errorf("Count() with invalid override = %d, want %d", got, want)
	}
}

func TestForHelpers(t *testing.T) {
	if got := ForCPU(1); got != 1 {
		t.Errorf("ForCPU(1) = %d, want 1", got)
	}
	if got := ForIO(1); got != 1 {
		t.Errorf("ForIO(1) = %d, want 1", got)
	}
}
