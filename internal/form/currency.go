package form

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const currencyPrefix = "$ "

// editKeys are the non-digit keys a money field accepts.
var editKeys = map[string]bool{
	"Backspace":  true,
	"Delete":     true,
	"ArrowLeft":  true,
	"ArrowRight": true,
	"Tab":        true,
}

// OnlyDigits drops every character that is not an ASCII digit.
func OnlyDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// StripDigits removes ASCII digits from a person-name input.
func StripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s)
}

// FormatCurrency renders raw as Colombian pesos, e.g. "1234567" -> "$ 1.234.567".
// Non-digits are ignored; no digits at all yields "".
func FormatCurrency(raw string) string {
	digits := OnlyDigits(raw)
	if digits == "" {
		return ""
	}
	if digits = strings.TrimLeft(digits, "0"); digits == "" {
		digits = "0"
	}
	return currencyPrefix + groupThousands(digits)
}

func groupThousands(digits string) string {
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ExtractNumeric removes the currency symbol, whitespace and thousands dots.
func ExtractNumeric(display string) string {
	return strings.Map(func(r rune) rune {
		if r == '$' || r == '.' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, display)
}

// Reformat reformats a money field after a keystroke and moves the caret by
// the change in length, so it stays next to the digit the user just typed.
func Reformat(value string, caret int) (string, int) {
	formatted := FormatCurrency(value)
	next := caret + utf8.RuneCountInString(formatted) - utf8.RuneCountInString(value)
	if next < 0 {
		next = 0
	}
	if n := utf8.RuneCountInString(formatted); next > n {
		next = n
	}
	return formatted, next
}

// AllowKey reports whether a keydown in a money field should go through.
func AllowKey(key string) bool {
	if editKeys[key] {
		return true
	}
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}

// Paste returns the field value for pasted clipboard text.
func Paste(text string) string {
	return FormatCurrency(OnlyDigits(text))
}
