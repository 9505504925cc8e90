// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package classify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon holds the word lists used for matching.
// Entries are compared against lowercased input.
type Lexicon struct {
	Greetings []string `yaml:"greetings" toml:"greetings" json:"greetings"`
	Negative  []string `yaml:"negative" toml:"negative" json:"negative"`
	Positive  []string `yaml:"positive" toml:"positive" json:"positive"`
}

var defaultGreetings = []string{"hello", "hi"}

// Hostility, profanity and violence terms.
var defaultNegative = []string{
	"blame", "go die", "get out", "curse", "not", "hate", "stupid", "idiot",
	"awful", "terrible", "worst", "angry", "disappointed", "bad", "shame",
	"unhappy", "furious", "annoying", "pathetic", "useless", "garbage",
	"shit", "fuck", "damn", "bitch", "asshole", "hell", "crap", "bullshit",
	"kill", "die", "murder", "destroy", "violence", "harm", "assault",
	"attack", "bomb", "terror", "threat", "danger", "suck", "lame", "rubbish",
}

// Religious and affirming vocabulary.
var defaultPositive = []string{
	"jesus", "gospel", "god", "christian", "amen", "bible", "cross", "savior",
	"redeemer", "heaven", "prayer", "faith", "holy", "spirit", "church",
	"bless", "grace", "love", "hope", "peace", "joy", "truth", "salvation",
	"worship", "hallelujah", "christ", "lord", "almighty", "divine",
	"miracle", "eternal", "resurrection",
}

// DefaultLexicon returns a copy of the built-in word lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Greetings: append([]string(nil), defaultGreetings...),
		Negative:  append([]string(nil), defaultNegative...),
		Positive:  append([]string(nil), defaultPositive...),
	}
}

// WithDefaults fills any empty list from the built-in lexicon.
func (l Lexicon) WithDefaults() Lexicon {
	def := DefaultLexicon()
	if len(l.Greetings) == 0 {
		l.Greetings = def.Greetings
	}
	if len(l.Negative) == 0 {
		l.Negative = def.Negative
	}
	if len(l.Positive) == 0 {
		l.Positive = def.Positive
	}
	return l
}

// normalized lowercases every entry and drops blanks. An empty token would
// match every message, so it is never kept.
func (l Lexicon) normalized() Lexicon {
	return Lexicon{
		Greetings: normalizeWords(l.Greetings),
		Negative:  normalizeWords(l.Negative),
		Positive:  normalizeWords(l.Positive),
	}
}

func normalizeWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(w)
		if strings.TrimSpace(w) == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}

// LoadLexiconFile reads a YAML lexicon. Lists missing from the file fall
// back to the built-in ones.
//
//	greetings: [hello, hi]
//	negative: [hate, stupid]
//	positive: [faith, hope]
func LoadLexiconFile(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("failed to read lexicon file: %w", err)
	}

	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("failed to parse lexicon file %s: %w", path, err)
	}
	return lex.WithDefaults(), nil
}
