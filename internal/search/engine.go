package search

import (
	"sort"
	"strings"
	"unicode"
)

// Engine suggests terms straight from the store without an index. It is
// the fallback when the bleve index cannot be opened.
type Engine struct {
	store TrendSource
}

func NewEngine(store TrendSource) *Engine {
	return &Engine{store: store}
}

// Suggest returns stored terms that extend prefix, best match first. The
// term equal to prefix itself is never suggested.
func (e *Engine) Suggest(prefix string, limit int) ([]*Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || limit <= 0 {
		return []*Suggestion{}, nil
	}

	trends, err := e.store.ListTrends()
	if err != nil {
		return nil, err
	}

	queryTerms := tokenize(prefix)
	out := []*Suggestion{}
	for _, t := range trends {
		if strings.EqualFold(t.SearchTerm, prefix) {
			continue
		}
		score := scoreTerm(t.SearchTerm, prefix, queryTerms)
		if score == 0 {
			continue
		}
		out = append(out, &Suggestion{
			Term:      t.SearchTerm,
			Count:     t.Count,
			PosterURL: t.PosterURL,
			Score:     score,
		})
	}

	rank(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// scoreTerm rates how well term completes prefix. A whole-string prefix
// match beats word-prefix matches; every query word must match.
func scoreTerm(term, prefix string, queryTerms []string) float64 {
	lower := strings.ToLower(term)
	if strings.HasPrefix(lower, strings.ToLower(prefix)) {
		return 3.0
	}
	if len(queryTerms) == 0 {
		return 0
	}

	words := tokenize(term)
	var score float64
	for _, q := range queryTerms {
		matched := false
		for _, w := range words {
			if strings.HasPrefix(w, q) {
				matched = true
				break
			}
		}
		if !matched {
			return 0
		}
		score += 1.0
	}
	return score / float64(len(queryTerms))
}

// rank orders by score, then popularity, then term.
func rank(s []*Suggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Score != s[j].Score {
			return s[i].Score > s[j].Score
		}
		if s[i].Count != s[j].Count {
			return s[i].Count > s[j].Count
		}
		return s[i].Term < s[j].Term
	})
}

// tokenize breaks text into lower-cased words of letters and digits.
func tokenize(text string) []string {
	var terms []string
	current := strings.Builder{}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else if current.Len() > 0 {
			terms = append(terms, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		terms = append(terms, current.String())
	}

	return terms
}
