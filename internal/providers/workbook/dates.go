package workbook

import "strings"

// isDateFormat reports whether a built-in or custom number format renders dates or times.
func isDateFormat(numFmt int, custom *string) bool {
	if custom != nil && *custom != "" {
		return isDateFormatCode(*custom)
	}
	switch {
	case numFmt >= 14 && numFmt <= 22,
		numFmt >= 27 && numFmt <= 36,
		numFmt >= 45 && numFmt <= 47,
		numFmt >= 50 && numFmt <= 58:
		return true
	}
	return false
}

// isDateFormatCode looks for date tokens outside quoted text, escapes and
// bracketed sections ("[Red]", "[$-409]"). Elapsed-time brackets like "[h]" count.
func isDateFormatCode(code string) bool {
	lower := strings.ToLower(code)
	if lower == "general" {
		return false
	}
	inQuote := false
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
		case c == '\\' || c == '_' || c == '*':
			i++
		case c == '[':
			end := strings.IndexByte(lower[i:], ']')
			if end < 0 {
				return false
			}
			inner := lower[i+1 : i+end]
			if inner == "h" || inner == "hh" || inner == "m" || inner == "mm" || inner == "s" || inner == "ss" {
				return true
			}
			i += end
		case strings.IndexByte("ymdhs", c) >= 0:
			return true
		}
	}
	return false
}
