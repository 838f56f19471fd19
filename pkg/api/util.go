package api

import (
	"fmt"
	"strings"
)

// PercentEncode escapes a string following RFC 3986, Section 2.1.
func PercentEncode(s string) string {
	sb := strings.Builder{}
	for _, b := range []byte(s) {
		switch {
		case b >= 'a' && b <= 'z':
			sb.WriteByte(b)
		case b >= 'A' && b <= 'Z':
			sb.WriteByte(b)
		case b >= '0' && b <= '9':
			sb.WriteByte(b)
		case b == '-' || b == '.' || b == '_' || b == '~':
			sb.WriteByte(b)
		default:
			sb.WriteString(fmt.Sprintf("%%%02X", b))
		}
	}

	return sb.String()
}
