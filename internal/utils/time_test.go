package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatEpochMillis(t *testing.T) {
	tests := []struct {
		name   string
		millis int64
		want   string
	}{
		{"epoch", 0, "1970-01-01 00:00:00"},
		{"truncates", 1700000000999, "2023-11-14 22:13:20"},
		{"negative floors", -1, "1969-12-31 23:59:59"},
		{"negative whole second", -1000, "1969-12-31 23:59:59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEpochMillis(tt.millis, time.UTC))
		})
	}
}

func TestLoadLocation(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation(""))
	assert.Equal(t, time.UTC, LoadLocation("Not/AZone"))
	assert.Equal(t, "Asia/Manila", LoadLocation("Asia/Manila").String())
}
