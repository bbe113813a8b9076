package booking_test

import (
	"errors"
	"testing"

	"BoatSharing/bot/workflows/booking"
)

func TestParseDatePair(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		birthDate string
		age       int
		wantErr   error
	}{
		{name: "plain", input: "01.01.1990, 35", birthDate: "01.01.1990", age: 35},
		{name: "no space after comma", input: "01.01.1990,35", birthDate: "01.01.1990", age: 35},
		{name: "surrounding whitespace", input: "  01.01.1990 ,  35  ", birthDate: "01.01.1990", age: 35},
		{name: "free-form date part", input: "1 января 1990, 35", birthDate: "1 января 1990", age: 35},
		{name: "missing comma", input: "01.01.1990 35", wantErr: booking.ErrDatePairFormat},
		{name: "too many parts", input: "01.01.1990, 35, extra", wantErr: booking.ErrDatePairFormat},
		{name: "empty", input: "", wantErr: booking.ErrDatePairFormat},
		{name: "age not a number", input: "01.01.1990, тридцать", wantErr: booking.ErrAgeFormat},
		{name: "age fractional", input: "01.01.1990, 35.5", wantErr: booking.ErrAgeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			birthDate, age, err := booking.ParseDatePair(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDatePair(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDatePair(%q): %v", tt.input, err)
			}
			if birthDate != tt.birthDate {
				t.Errorf("birthDate = %q, want %q", birthDate, tt.birthDate)
			}
			if age != tt.age {
				t.Errorf("age = %d, want %d", age, tt.age)
			}
		})
	}
}

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"✅ Да", true},
		{"Да", true},
		{"да", true},
		{"ДА", true},
		{"да, есть", true},
		{"❌ Нет", false},
		{"Нет", false},
		{"не знаю", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := booking.IsAffirmative(tt.answer); got != tt.want {
			t.Errorf("IsAffirmative(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
}
