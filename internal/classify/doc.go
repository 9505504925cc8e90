// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package classify maps free-text chat messages to a sentiment label and a
// canned reply.
//
// Classification is keyword based. Rules are evaluated in a fixed order and
// the first match wins:
//
//  1. Exact greeting ("hello", "hi") - Neutral, greeting reply
//  2. Any negative token as a substring - Negative, warning reply
//  3. Any positive token as a substring - Positive, theological reply
//  4. Anything else - Neutral, default reply
//
// Matching is case-insensitive substring containment, not word-boundary
// aware: the negative token "not" also matches "note" and "cannot".
//
// # Key Types
//
//   - Label: Neutral, Positive or Negative
//   - Result: label, reply text, analysis summary and connect flag
//   - Lexicon: the greeting, negative and positive word lists
//   - Classifier: a lexicon bound to matching options
//
// # Usage
//
//	res := classify.Classify("I have faith in God")
//	fmt.Println(res.Label, res.Response)
//
//	c := classify.New(lexicon, classify.WithUnicodeFold(true))
//	res = c.Classify(text)
package classify
