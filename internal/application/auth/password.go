package auth

import "unicode"

// MinPasswordLength longitud mínima de la contraseña.
const MinPasswordLength = 8

// IsStrongPassword exige al menos 8 caracteres con mayúscula, minúscula, dígito y un símbolo.
func IsStrongPassword(pw string) bool {
	if len([]rune(pw)) < MinPasswordLength {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}
