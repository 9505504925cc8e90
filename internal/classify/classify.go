// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package classify

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canned replies.
const (
	GreetingResponse = "Hello, what can I help you?"
	NegativeResponse = "That is an inappropriate comment. Please maintain a respectful conversation."
	PositiveResponse = "God is the only one God and He gave His only son, Jesus. Jesus is the son of God and died in the cross for us 2 thousands years ago."
	DefaultResponse  = "Any other questions?"
)

// Rule identifies which branch produced a classification.
type Rule int

const (
	RuleDefault Rule = iota
	RuleGreeting
	RuleNegative
	RulePositive
)

func (r Rule) String() string {
	switch r {
	case RuleGreeting:
		return "greeting"
	case RuleNegative:
		return "negative"
	case RulePositive:
		return "positive"
	default:
		return "default"
	}
}

// MarshalText encodes the rule by name.
func (r Rule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Result is the outcome of classifying one message.
type Result struct {
	Label    Label  `json:"label"`
	Response string `json:"response"`
	Analysis string `json:"analyze"`
	Connect  bool   `json:"connect"`
}

// Breakdown returns the percentage split behind Analysis.
func (r Result) Breakdown() Breakdown {
	return BreakdownFor(r.Label)
}

// Match is a Result together with the rule and token that produced it.
type Match struct {
	Result
	Rule  Rule   `json:"rule"`
	Token string `json:"token,omitempty"`
}

func newResult(label Label, response string) Result {
	return Result{
		Label:    label,
		Response: response,
		Analysis: BreakdownFor(label).String(),
		Connect:  label == Positive,
	}
}

// =============================================================================
// CLASSIFIER
// =============================================================================

// Classifier applies a fixed lexicon. It holds no mutable state and is safe
// for concurrent use.
type Classifier struct {
	lexicon     Lexicon
	unicodeFold bool
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithUnicodeFold enables NFKC normalization before lowercasing, so
// compatibility forms such as full-width letters match their ASCII tokens.
func WithUnicodeFold(enabled bool) Option {
	return func(c *Classifier) {
		c.unicodeFold = enabled
	}
}

// New creates a classifier for the given lexicon. Empty lists are replaced
// by the built-in ones.
func New(lex Lexicon, opts ...Option) *Classifier {
	c := &Classifier{
		lexicon: lex.WithDefaults().normalized(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClassifier = New(DefaultLexicon())

// Default returns the classifier built from the built-in lexicon.
func Default() *Classifier {
	return defaultClassifier
}

// Classify classifies text with the built-in lexicon.
func Classify(text string) Result {
	return defaultClassifier.Classify(text)
}

// Lexicon returns the normalized word lists in use.
func (c *Classifier) Lexicon() Lexicon {
	return Lexicon{
		Greetings: append([]string(nil), c.lexicon.Greetings...),
		Negative:  append([]string(nil), c.lexicon.Negative...),
		Positive:  append([]string(nil), c.lexicon.Positive...),
	}
}

// Classify returns the result for text. It never fails; empty input falls
// through to the default reply.
func (c *Classifier) Classify(text string) Result {
	return c.Match(text).Result
}

// Match classifies text and reports the rule and token that matched.
// The order of checks is significant: greeting, negative, positive.
func (c *Classifier) Match(text string) Match {
	q := c.normalize(text)

	for _, g := range c.lexicon.Greetings {
		if q == g {
			return Match{Result: newResult(Neutral, GreetingResponse), Rule: RuleGreeting, Token: g}
		}
	}

	if tok, ok := containsAny(q, c.lexicon.Negative); ok {
		return Match{Result: newResult(Negative, NegativeResponse), Rule: RuleNegative, Token: tok}
	}

	if tok, ok := containsAny(q, c.lexicon.Positive); ok {
		return Match{Result: newResult(Positive, PositiveResponse), Rule: RulePositive, Token: tok}
	}

	return Match{Result: newResult(Neutral, DefaultResponse), Rule: RuleDefault}
}

func (c *Classifier) normalize(text string) string {
	if c.unicodeFold {
		text = norm.NFKC.String(text)
	}
	return strings.ToLower(text)
}

// containsAny returns the first word, in list order, found anywhere in s.
func containsAny(s string, words []string) (string, bool) {
	for _, w := range words {
		if strings.Contains(s, w) {
			return w, true
		}
	}
	return "", false
}
