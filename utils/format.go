package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatXP renders an XP total with pt-BR digit grouping (1234567 → "1.234.567").
func FormatXP(xp int64) string {
	return ptBR.Sprintf("%d", xp)
}

// FormatBRL renders a price in cents as "R$ 29,90". Zero is "Grátis".
func FormatBRL(cents int64) string {
	if cents == 0 {
		return "Grátis"
	}
	return ptBR.Sprintf("R$ %.2f", float64(cents)/100)
}
