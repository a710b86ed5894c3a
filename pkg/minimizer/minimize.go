package minimizer

import (
	"errors"

	"github.com/wonderfulspam/format-smith/pkg/document"
	"github.com/wonderfulspam/format-smith/pkg/language"
)

// Reserved configuration keys.
const (
	BasedOnStyleKey = "BasedOnStyle"
	LanguageKey     = "Language"
)

var (
	basedOnStyle = document.String(BasedOnStyleKey)
	languageTag  = document.String(LanguageKey)
)

// ErrNoCandidates is returned when there is no base style to select from.
var ErrNoCandidates = errors.New("no candidate base styles")

// Candidate is a named base style configuration.
type Candidate struct {
	Name string
	Base *document.Mapping
}

// Score is the size of the override document a candidate produced.
type Score struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// Result describes a selection.
type Result struct {
	Override *document.Mapping
	// Base is the chosen style name, empty on pass-through.
	Base string
	// PassThrough is set when the target already named its base style.
	PassThrough bool
	// Scores lists every candidate in the order it was evaluated.
	Scores []Score
}

// IsMinimal reports whether target already names a base style.
func IsMinimal(target *document.Mapping) bool {
	return target.Has(basedOnStyle)
}

// LanguageOf returns the language context declared by a configuration's
// Language key. Missing or unknown tags yield language.None.
func LanguageOf(config *document.Mapping) language.Language {
	v, ok := config.Get(languageTag)
	if !ok {
		return language.None
	}
	tag, _ := document.ScalarString(v)
	return language.Parse(tag)
}

// Minimize returns the smallest override document for target among the
// candidates. lang is the target's language context; when set, the
// Language key is carried into the result instead of being diffed.
func Minimize(target *document.Mapping, lang language.Language, candidates []Candidate) (*document.Mapping, error) {
	res, err := Select(target, lang, candidates)
	if err != nil {
		return nil, err
	}
	return res.Override, nil
}

// Select is Minimize with the per-candidate scores attached.
//
// The size compared is the number of own keys of each override document;
// nested mappings count as one entry however large they are. The first
// candidate with the minimum size wins, so the outcome depends only on
// candidate order.
func Select(target *document.Mapping, lang language.Language, candidates []Candidate) (*Result, error) {
	if IsMinimal(target) {
		return &Result{Override: target, PassThrough: true}, nil
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	diffed := target
	if lang.IsSet() {
		diffed = target.Without(languageTag)
	}

	res := &Result{Scores: make([]Score, 0, len(candidates))}
	for _, c := range candidates {
		override := assemble(diffed, lang, c)
		res.Scores = append(res.Scores, Score{Name: c.Name, Size: override.Len()})

		if res.Override == nil || override.Len() < res.Override.Len() {
			res.Override = override
			res.Base = c.Name
		}
	}

	return res, nil
}

func assemble(target *document.Mapping, lang language.Language, c Candidate) *document.Mapping {
	out := document.NewMapping()
	if lang.IsSet() {
		out.Set(languageTag, document.String(lang.Name()))
	}
	out.Set(basedOnStyle, document.String(c.Name))

	for _, e := range Diff(target, c.Base).Entries() {
		out.Set(e.Key, e.Value)
	}
	return out
}
