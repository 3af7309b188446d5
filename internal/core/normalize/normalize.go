// Package normalize provides deterministic per-field canonicalization for
// identity search input.
// Pipeline order (name fields)
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Case folding (Latin) / letter-variant folding (Arabic)
// 4 Remove combining marks and format chars
// 5 Collapse whitespace to single spaces and trim
//
// Normalization never fails: unparsable input degrades to the zero value so
// the corresponding retrieval strategy is simply skipped downstream.
package normalize

import (
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldArabicRune maps Arabic letter variants onto a single canonical form so
// spelling differences (alef/hamza seats, teh marbuta, alef maqsura) do not
// defeat exact and composite matching
func foldArabicRune(r rune) rune {
	switch r {
	case 'آ', 'أ', 'إ', 'ٱ': // آ أ إ ٱ
		return 'ا' // ا
	case 'ى', 'ئ': // ى ئ
		return 'ي' // ي
	case 'ؤ': // ؤ
		return 'و' // و
	case 'ة': // ة
		return 'ه' // ه
	}
	return r
}

// stripArabic drops characters that carry no identity signal
func stripArabic(r rune) bool {
	return r == 'ـ' || r == 'ء' // tatweel, bare hamza
}

// pools of fresh transformer chains, one per field family; order matters
var (
	arabicChain = sync.Pool{
		New: func() any {
			return transform.Chain(
				norm.NFKC,
				runes.Remove(runes.In(unicode.Mn)), // harakat
				runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF
				runes.Remove(runes.Predicate(stripArabic)),
				runes.Map(foldArabicRune),
			)
		},
	}
	latinChain = sync.Pool{
		New: func() any {
			return transform.Chain(
				norm.NFKD, // decompose so accents become combining marks
				cases.Fold(),
				runes.Remove(runes.In(unicode.Mn)),
				runes.Remove(runes.In(unicode.Cf)),
				norm.NFC,
			)
		},
	}
)

func apply(pool *sync.Pool, s string) string {
	tr := pool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	pool.Put(tr)
	return ns
}

// Arabic canonicalizes an Arabic name field
func Arabic(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")
	return collapseSpaces(apply(&arabicChain, s))
}

// Latin canonicalizes a Latin name field
func Latin(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")
	return collapseSpaces(apply(&latinChain, s))
}

// Document canonicalizes a document number (national id, passport,
// registration): non-alphanumerics dropped, rest upper-cased
func Document(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Digits reduces a phone number to its digit-only canonical form
func Digits(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// dateLayouts are tried in order; time-of-day is discarded
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// Date parses a date-of-birth field to a calendar date in UTC.
// ok=false means the field could not be parsed and must be omitted from
// matching; Date never returns an error
func Date(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
