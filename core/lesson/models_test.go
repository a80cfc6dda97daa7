package lesson

import (
	"testing"
	"time"
)

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		month     string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{month: "2024-05", wantStart: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), wantEnd: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{month: "2024-12", wantStart: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), wantEnd: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{month: "2024-5", wantErr: true},
		{month: "May-2024", wantErr: true},
		{month: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			start, end, err := MonthWindow(tt.month)
			if tt.wantErr {
				if err == nil {
					t.Errorf("MonthWindow(%q) expected error", tt.month)
				}
				return
			}
			if err != nil {
				t.Fatalf("MonthWindow(%q) failed: %v", tt.month, err)
			}
			if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
				t.Errorf("MonthWindow(%q) = [%v, %v), want [%v, %v)", tt.month, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
