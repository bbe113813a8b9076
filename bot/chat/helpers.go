package chat

// NormalizePhone strips non-digit characters and prepends "+".
func NormalizePhone(phone string) string {
	digits := ""
	for _, ch := range phone {
		if ch >= '0' && ch <= '9' {
			digits += string(ch)
		}
	}
	if len(digits) > 0 {
		digits = "+" + digits
	}
	return digits
}
