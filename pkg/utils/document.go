package utils

import "strings"

// ValidCPF checks the two verifier digits of a Brazilian CPF. Accepts the
// punctuated form (000.000.000-00) or bare digits.
func ValidCPF(document string) bool {
	digits := onlyDigits(document)
	if len(digits) != 11 || allSame(digits) {
		return false
	}

	if digits[9] != cpfVerifier(digits[:9], 10) {
		return false
	}
	return digits[10] == cpfVerifier(digits[:10], 11)
}

// ValidCNPJ checks the two verifier digits of a Brazilian CNPJ.
func ValidCNPJ(document string) bool {
	digits := onlyDigits(document)
	if len(digits) != 14 || allSame(digits) {
		return false
	}

	if digits[12] != cnpjVerifier(digits[:12]) {
		return false
	}
	return digits[13] == cnpjVerifier(digits[:13])
}

// NormalizeDocument strips CPF/CNPJ punctuation so only digits are stored.
func NormalizeDocument(document string) string {
	return string(onlyDigits(document))
}

func onlyDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, byte(r))
		}
	}
	return out
}

func allSame(digits []byte) bool {
	return strings.Count(string(digits), string(digits[0])) == len(digits)
}

func cpfVerifier(digits []byte, startWeight int) byte {
	sum := 0
	for i, d := range digits {
		sum += int(d-'0') * (startWeight - i)
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte('0' + 11 - rest)
}

func cnpjVerifier(digits []byte) byte {
	weights := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	offset := len(weights) - len(digits)
	sum := 0
	for i, d := range digits {
		sum += int(d-'0') * weights[offset+i]
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte('0' + 11 - rest)
}
