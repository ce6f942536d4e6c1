package table

import "strings"

// SafeName makes s usable as a file, sheet or table name. Characters
// other than ASCII letters, digits, '_' and '-' become '_'. An empty
// result becomes "table".
func SafeName(s string) string {
	res := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_' || r == '-':
			return r
		}
		return '_'
	}, s)
	if res == "" {
		return "table"
	}
	return res
}
