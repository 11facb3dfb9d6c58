package scheduler

import (
	"testing"
	"time"
)

func TestNextRunAfter(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{
			name: "before the hour fires same day",
			now:  time.Date(2026, 8, 28, 1, 30, 0, 0, time.UTC),
			hour: 2,
			want: time.Date(2026, 8, 28, 2, 0, 0, 0, time.UTC),
		},
		{
			name: "after the hour fires next day",
			now:  time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC),
			hour: 2,
			want: time.Date(2026, 8, 29, 2, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly at the hour fires next day",
			now:  time.Date(2026, 8, 28, 2, 0, 0, 0, time.UTC),
			hour: 2,
			want: time.Date(2026, 8, 29, 2, 0, 0, 0, time.UTC),
		},
		{
			name: "midnight schedule",
			now:  time.Date(2026, 8, 28, 23, 59, 0, 0, time.UTC),
			hour: 0,
			want: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextRunAfter(tt.now, tt.hour)
			if !got.Equal(tt.want) {
				t.Fatalf("nextRunAfter(%v, %d) = %v, want %v", tt.now, tt.hour, got, tt.want)
			}
		})
	}
}
