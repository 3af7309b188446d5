// Package hypocorism expands a given name into its equivalent nickname
// variants per language. The default dictionary is compiled from the embedded
// names.json; callers can inject their own groups so the mapping stays
// configuration, not code
package hypocorism

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"civlink/internal/core/normalize"
)

//go:embed names.json
var embedded []byte

// Lang keys a per-language variant group set
type Lang string

const (
	// LangArabic selects the Arabic name groups
	LangArabic Lang = "ar"
	// LangLatin selects the Latin name groups
	LangLatin Lang = "en"
)

// Set is the expansion result for one query.
// Applied is true iff any variant list is non-empty
type Set struct {
	Arabic  []string
	Latin   []string
	Applied bool
}

type rawPack struct {
	Version int                 `json:"version"`
	Meta    map[string]any      `json:"meta"`
	Groups  map[Lang][][]string `json:"groups"`
}

// Dict is a compiled bidirectional lookup: every member of a group expands to
// all other members of that group
type Dict struct {
	byLang map[Lang]map[string][]string
}

// New compiles groups into a Dict. Names are canonicalized with the same
// normalizer the search pipeline uses, so fixture spelling cannot drift from
// query spelling
func New(groups map[Lang][][]string) (*Dict, error) {
	d := &Dict{byLang: make(map[Lang]map[string][]string, len(groups))}
	for lang, gs := range groups {
		canon := normalize.Latin
		if lang == LangArabic {
			canon = normalize.Arabic
		}
		idx := make(map[string]map[string]struct{})
		for gi, g := range gs {
			if len(g) < 2 {
				return nil, fmt.Errorf("hypocorism: group %d in %q has fewer than two names", gi, lang)
			}
			names := make([]string, 0, len(g))
			for _, n := range g {
				cn := canon(n)
				if cn == "" {
					return nil, fmt.Errorf("hypocorism: empty name in group %d of %q", gi, lang)
				}
				names = append(names, cn)
			}
			for _, n := range names {
				set, ok := idx[n]
				if !ok {
					set = make(map[string]struct{})
					idx[n] = set
				}
				for _, other := range names {
					if other != n {
						set[other] = struct{}{}
					}
				}
			}
		}
		flat := make(map[string][]string, len(idx))
		for n, set := range idx {
			vs := make([]string, 0, len(set))
			for v := range set {
				vs = append(vs, v)
			}
			sort.Strings(vs) // deterministic expansion order
			flat[n] = vs
		}
		d.byLang[lang] = flat
	}
	return d, nil
}

var (
	defOnce sync.Once
	defDict *Dict
	defErr  error
)

// Default returns the Dict compiled from the embedded names.json
func Default() (*Dict, error) {
	defOnce.Do(func() {
		var rp rawPack
		if err := json.Unmarshal(embedded, &rp); err != nil {
			defErr = fmt.Errorf("hypocorism: parse names.json: %w", err)
			return
		}
		defDict, defErr = New(rp.Groups)
	})
	return defDict, defErr
}

// MustDefault panics when the embedded dictionary fails to compile.
// Intended for process bootstrap only
func MustDefault() *Dict {
	d, err := Default()
	if err != nil {
		panic(err)
	}
	return d
}

// Variants returns the expansion for a single normalized name, nil when the
// name is unknown
func (d *Dict) Variants(lang Lang, name string) []string {
	if d == nil || name == "" {
		return nil
	}
	return d.byLang[lang][name]
}

// Expand looks up both first names (already normalized) and returns the
// per-language variant sets
func (d *Dict) Expand(arabicFirst, latinFirst string) Set {
	s := Set{
		Arabic: d.Variants(LangArabic, arabicFirst),
		Latin:  d.Variants(LangLatin, latinFirst),
	}
	s.Applied = len(s.Arabic) > 0 || len(s.Latin) > 0
	return s
}
