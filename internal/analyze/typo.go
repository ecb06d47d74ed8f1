package analyze

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/runnerr0/timecraft/internal/history"
)

// DefaultMinTokenLength is the shortest first token checked for typos.
const DefaultMinTokenLength = 2

// DefaultVocabulary returns the command names typed tokens are compared to.
func DefaultVocabulary() []string {
	return []string{
		"ls", "cd", "git", "docker", "npm", "yarn", "cargo",
		"python", "pip", "node", "vim", "code",
	}
}

// TypoSuggestion is a typed token, the vocabulary word it resembles, and how
// many records had that token.
type TypoSuggestion struct {
	Typed string `json:"typed"`
	Meant string `json:"meant"`
	Count int    `json:"count"`
}

// Scorer rates how closely typed resembles word. Zero or less means no match.
type Scorer interface {
	Score(typed, word string) int
}

// FuzzyScorer matches case-insensitively. A word matches when its letters
// appear in order inside the typed token, or when the two are within a small
// edit distance (one edit for words up to four letters, two beyond that).
type FuzzyScorer struct{}

// Score implements Scorer.
func (FuzzyScorer) Score(typed, word string) int {
	typed = strings.ToLower(typed)
	word = strings.ToLower(word)

	if matches := fuzzy.Find(word, []string{typed}); len(matches) > 0 {
		return max(matches[0].Score, 1)
	}

	budget := 1
	if len([]rune(word)) > 4 {
		budget = 2
	}
	if d := editDistance(typed, word); d <= budget {
		return budget - d + 1
	}
	return 0
}

// editDistance is the optimal string alignment distance: insertions,
// deletions, substitutions and adjacent transpositions each cost one.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev2 := make([]int, len(rb)+1)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				cur[j] = min(cur[j], prev2[j-2]+1)
			}
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[len(rb)]
}

// TypoOptions configures FindTypos. Zero values fall back to the defaults.
type TypoOptions struct {
	Vocabulary     []string
	MinTokenLength int
	Scorer         Scorer
}

type typoKey struct {
	typed string
	meant string
}

// FindTypos compares every record's first token with each vocabulary word
// and counts (typed, meant) pairs that score a match. Only a token that is
// byte-for-byte the word is skipped, so "Git" is reported as meaning "git".
// A single token can resemble several words; each pair is reported
// separately. Results are
// sorted by typed, then meant.
func FindTypos(records []history.Record, opts TypoOptions) []TypoSuggestion {
	vocab := opts.Vocabulary
	if len(vocab) == 0 {
		vocab = DefaultVocabulary()
	}
	minLen := opts.MinTokenLength
	if minLen <= 0 {
		minLen = DefaultMinTokenLength
	}
	scorer := opts.Scorer
	if scorer == nil {
		scorer = FuzzyScorer{}
	}

	counts := make(map[typoKey]int)
	for _, rec := range records {
		tok := FirstToken(rec.Command)
		if len(tok) < minLen {
			continue
		}
		for _, word := range vocab {
			if tok != word && scorer.Score(tok, word) > 0 {
				counts[typoKey{typed: tok, meant: word}]++
			}
		}
	}

	out := make([]TypoSuggestion, 0, len(counts))
	for k, n := range counts {
		out = append(out, TypoSuggestion{Typed: k.typed, Meant: k.meant, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Typed == out[j].Typed {
			return out[i].Meant < out[j].Meant
		}
		return out[i].Typed < out[j].Typed
	})
	return out
}
