package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Start  string `validate:"omitempty,hhmm"`
	Date   string `validate:"omitempty,ymd"`
	Day    string `validate:"omitempty,weekday"`
	Status string `validate:"omitempty,booking_status"`
	Role   string `validate:"omitempty,user_role"`
	TZ     string `validate:"omitempty,iana_tz"`
}

func TestCustomTags(t *testing.T) {
	v := validator.New()
	if err := RegisterOn(v); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name  string
		in    sample
		valid bool
	}{
		{"empty", sample{}, true},
		{"all valid", sample{"09:30", "2025-06-02", "monday", "confirmed", "provider", "America/Sao_Paulo"}, true},
		{"bad clock", sample{Start: "25:00"}, false},
		{"bad date", sample{Date: "2025-13-01"}, false},
		{"bad weekday", sample{Day: "funday"}, false},
		{"bad status", sample{Status: "archived"}, false},
		{"bad role", sample{Role: "admin"}, false},
		{"bad tz", sample{TZ: "Mars/Olympus"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if (err == nil) != tt.valid {
				t.Fatalf("valid=%v, err=%v", tt.valid, err)
			}
		})
	}
}

func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	for _, email := range []string{"", "nobody", "@example.com", "user@"} {
		if IsEmailDomainValid(email) {
			t.Errorf("%q accepted", email)
		}
	}
}
