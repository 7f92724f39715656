package availability

import (
	"reflect"
	"testing"
)

func TestFilterAvailable(t *testing.T) {
	tests := []struct {
		name         string
		windows      []Window
		reservations []Reservation
		want         []Window
	}{
		{
			name:    "window ending at booking start is kept",
			windows: windows(t, "13:00", "14:00", "14:00", "15:00", "15:00", "16:00"),
			reservations: []Reservation{
				{Window: windows(t, "14:00", "15:00")[0]},
			},
			want: windows(t, "13:00", "14:00", "15:00", "16:00"),
		},
		{
			name:    "partial overlap removes window",
			windows: windows(t, "09:00", "10:00", "10:15", "11:15"),
			reservations: []Reservation{
				{Window: windows(t, "09:30", "10:30")[0]},
			},
			want: []Window{},
		},
		{
			name:    "cancelled booking frees the window",
			windows: windows(t, "09:00", "10:00"),
			reservations: []Reservation{
				{Window: windows(t, "09:00", "10:00")[0], Cancelled: true},
			},
			want: windows(t, "09:00", "10:00"),
		},
		{
			name:    "no reservations keeps order",
			windows: windows(t, "11:00", "12:00", "09:00", "10:00"),
			want:    windows(t, "11:00", "12:00", "09:00", "10:00"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAvailable(tt.windows, tt.reservations)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for _, w := range got {
				for _, r := range tt.reservations {
					if !r.Cancelled && w.Overlaps(r.Window) {
						t.Fatalf("window %s overlaps reservation %s", w, r.Window)
					}
				}
			}
		})
	}
}

func TestContains(t *testing.T) {
	open := windows(t, "09:00", "10:00", "10:15", "11:15")

	if !Contains(open, open[1]) {
		t.Fatal("expected exact match")
	}
	if Contains(open, windows(t, "09:00", "09:30")[0]) {
		t.Fatal("sub-window must not match")
	}
}
