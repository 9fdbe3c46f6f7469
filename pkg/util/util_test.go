package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		def  int64
		want int64
	}{
		{"", 7, 7},
		{"0", 7, 7},
		{"1024B", 0, 1024},
		{"512KB", 0, 512 * 1024},
		{" 2mb ", 0, 2 * 1024 * 1024},
		{"1GB", 0, 1024 * 1024 * 1024},
		{"abc", 3, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSize(tt.in, tt.def), tt.in)
	}
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("2d")
	assert.NoError(t, err)
	assert.Equal(t, 48*time.Hour, d)

	d, err = ParseDuration("30")
	assert.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)

	d, err = ParseDuration("1m30s")
	assert.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	_, err = ParseDuration("xd")
	assert.Error(t, err)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "12B", FormatSize(12))
	assert.Equal(t, "1.5KB", FormatSize(1536))
	assert.Equal(t, "2.0MB", FormatSize(2*1024*1024))
}

func TestGetOSPrettyName(t *testing.T) {
	assert.NotEmpty(t, GetOSPrettyName())
}
