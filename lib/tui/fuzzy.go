// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Slab allocation sizes for fzf's scratch memory. One slab serves many
// matches; the browser allocates one per filter pass.
const (
	slabSize16 = 100 * 1024
	slabSize32 = 2048
)

// fzf's algo package requires Init to fill its character-class and
// bonus tables; without it case folding never happens.
func init() {
	algo.Init("default")
}

// NewSlab allocates scratch memory for FuzzyMatch. Pass the same slab
// to every call within one filter pass; pass nil to allocate per call.
func NewSlab() *util.Slab {
	return util.MakeSlab(slabSize16, slabSize32)
}

// FuzzyResult holds one fuzzy match outcome.
type FuzzyResult struct {
	// Score is fzf's match score. Zero means no match.
	Score int
	// Positions are the rune indices of matched characters in the
	// text, for highlighting. Empty when there is no match.
	Positions []int
}

// FuzzyMatch scores pattern against text using fzf's V2 algorithm,
// case-insensitively with Unicode normalization. An empty pattern
// matches nothing — the caller treats an empty filter as "show all"
// rather than scoring it.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}
	// fzf expects the pattern lowercased when matching
	// case-insensitively.
	pattern = []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, pattern, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}
	out := FuzzyResult{Score: result.Score}
	if positions != nil {
		out.Positions = *positions
	}
	return out
}
