package booking

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrDatePairFormat means the input did not split into exactly two
	// comma-separated parts.
	ErrDatePairFormat = errors.New("expected date and age separated by a comma")
	// ErrAgeFormat means the age part did not parse as an integer.
	ErrAgeFormat = errors.New("age is not an integer")
)

// ParseDatePair parses the combined "birth date, age" answer. Both parts
// tolerate surrounding whitespace.
func ParseDatePair(input string) (birthDate string, age int, err error) {
	parts := strings.Split(strings.TrimSpace(input), ",")
	if len(parts) != 2 {
		return "", 0, ErrDatePairFormat
	}

	birthDate = strings.TrimSpace(parts[0])
	age, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", 0, ErrAgeFormat
	}

	return birthDate, age, nil
}

// IsAffirmative reports whether the answer contains the affirmative token,
// case-insensitively. Button answers arrive as "✅ Да" and typed answers in
// arbitrary casing, so any answer containing the token counts as "yes".
func IsAffirmative(answer string) bool {
	return strings.Contains(strings.ToLower(answer), "да")
}
