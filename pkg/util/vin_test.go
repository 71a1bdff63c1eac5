package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidVIN(t *testing.T) {
	tests := []struct {
		name  string
		vin   string
		valid bool
	}{
		{"valid used car VIN", "4T1BF1FK5HU123456", true},
		{"valid with all allowed letters", "1HGCM82633A004352", true},
		{"too short", "4T1BF1FK5HU12345", false},
		{"too long", "4T1BF1FK5HU1234567", false},
		{"contains I", "4T1BF1FK5HU12345I", false},
		{"contains O", "4T1BF1FK5HU12345O", false},
		{"contains Q", "4T1BF1FK5HU12345Q", false},
		{"lowercase rejected", "4t1bf1fk5hu123456", false},
		{"empty", "", false},
		{"punctuation", "4T1BF1FK5-U123456", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidVIN(tt.vin))
		})
	}
}
