// Package locale provides the two supported response locales, a stateless
// Greek-detection classifier, and the bilingual message catalogs used to
// synthesize voice responses.
//
// The caller-supplied language always wins; the character-range heuristic
// is a fallback for calls where the platform did not report a preference.
package locale

import (
	"fmt"
	"strings"
)

// Locale is a supported response language tag.
type Locale string

const (
	// EN is English, the default locale.
	EN Locale = "en"

	// EL is Greek.
	EL Locale = "el"
)

// Normalize maps a caller-supplied language code to a supported Locale.
// Any unknown or empty value defaults to EN.
func Normalize(lang string) Locale {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "el", "el-gr", "gr", "greek":
		return EL
	default:
		return EN
	}
}

// Detect classifies text as Greek or English by scanning for characters in
// the Greek and Greek Extended Unicode blocks. It is a pure function; it
// holds no state and is safe for concurrent use.
func Detect(text string) Locale {
	for _, r := range text {
		if (r >= 0x0370 && r <= 0x03FF) || (r >= 0x1F00 && r <= 0x1FFF) {
			return EL
		}
	}
	return EN
}

// Resolve picks the response locale for an invocation: the caller-supplied
// preference when present, otherwise the detection heuristic applied to the
// customer's own words.
func Resolve(preferred, text string) Locale {
	if strings.TrimSpace(preferred) != "" {
		return Normalize(preferred)
	}
	return Detect(text)
}

// T returns the message for key in the given locale, falling back to
// English, and finally to the key itself so a response is never empty.
func T(l Locale, key string) string {
	if msg, ok := messages[l][key]; ok {
		return msg
	}
	if msg, ok := messages[EN][key]; ok {
		return msg
	}
	return key
}

// Sprintf returns the translated message for key formatted with args.
func Sprintf(l Locale, key string, args ...any) string {
	return fmt.Sprintf(T(l, key), args...)
}

// Categories returns the static category suggestions spoken when a search
// finds nothing. The list always has at least three entries per locale.
func Categories(l Locale) []string {
	if l == EL {
		return []string{"επεξεργαστές", "κάρτες γραφικών", "μνήμες", "δίσκοι SSD", "φορητοί υπολογιστές"}
	}
	return []string{"processors", "graphics cards", "memory", "SSD drives", "laptops"}
}

// messages stores all translations, keyed by locale then message key.
var messages = map[Locale]map[string]string{
	EN: messagesEN,
	EL: messagesEL,
}
