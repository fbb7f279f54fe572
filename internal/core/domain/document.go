package domain

import (
	"strings"
	"unicode"
)

// DigitsOnly drops every non-digit rune
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// NormalizeDocument validates a tax id against the person type and returns
// its digit-only form. An empty document yields "" with no error.
//
// A document without a person type is rejected; a person type without a
// document is fine.
func NormalizeDocument(personType *PersonType, document string) (string, error) {
	if strings.TrimSpace(document) == "" {
		return "", nil
	}
	if personType == nil {
		return "", NewValidationError("Informe o tipo de pessoa ao enviar um documento.")
	}

	digits := DigitsOnly(document)
	switch *personType {
	case PersonIndividual:
		if len(digits) != 11 {
			return "", NewValidationError("CPF inválido. Deve conter 11 dígitos numéricos.")
		}
	case PersonOrganization:
		if len(digits) != 14 {
			return "", NewValidationError("CNPJ inválido. Deve conter 14 dígitos numéricos.")
		}
	default:
		return "", NewValidationError("Tipo de pessoa inválido.")
	}
	return digits, nil
}

// NormalizePayerIdentification strips dots and hyphens from a provider
// identification number, leaving other characters alone.
func NormalizePayerIdentification(number string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, number)
}
