package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0 seconds"},
		{1, "1 second"},
		{45, "45 seconds"},
		{60, "1 minute"},
		{61, "1 minute and 1 second"},
		{90, "1 minute and 30 seconds"},
		{120, "2 minutes"},
		{150, "2 minutes and 30 seconds"},
		{3600, "1 hour"},
		{3660, "1 hour and 1 minute"},
		{3661, "1 hour and 1 minute"},
		{3725, "1 hour and 2 minutes"},
		{7200, "2 hours"},
		{7260, "2 hours and 1 minute"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds), "seconds=%d", tt.seconds)
	}
}
