package ui

import (
	"errors"
	"testing"
)

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"15", 15, false},
		{" 15 ", 15, false},
		{"1", 1, false},
		{"525600", 525600, false},
		{"", 0, true},
		{"abc", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
		{"1.5", 0, true},
		{"10m", 0, true},
		{"99999999999", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMinutes(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidMinutes) {
				t.Errorf("ParseMinutes(%q) err = %v, want ErrInvalidMinutes", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseMinutes(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
}

func TestParsePresets(t *testing.T) {
	got, err := ParsePresets(" 5, 15,45 ,")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 5 || got[1] != 15 || got[2] != 45 {
		t.Fatalf("ParsePresets = %v", got)
	}
	if formatPresets(got) != "5, 15, 45" {
		t.Errorf("formatPresets = %q", formatPresets(got))
	}

	for _, bad := range []string{"", " , ", "5, x", "0"} {
		if _, err := ParsePresets(bad); !errors.Is(err, ErrInvalidMinutes) {
			t.Errorf("ParsePresets(%q) err = %v, want ErrInvalidMinutes", bad, err)
		}
	}
}
