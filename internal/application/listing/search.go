package listing

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeSearch forma canónica del término: NFC, sin espacios sobrantes.
// Dos entradas que solo difieren en composición Unicode o espacios no disparan otra petición.
func NormalizeSearch(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
