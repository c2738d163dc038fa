package search

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	unicodetok "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/pders01/reel/internal/storage"
)

const termAnalyzer = "reel_term"

type bleveEngine struct {
	store TrendSource
	idx   bleve.Index
}

// NewBleveEngine creates or opens a Bleve index at indexPath and indexes
// every stored trend term.
func NewBleveEngine(store TrendSource, indexPath string) (Suggester, error) {
	_ = os.MkdirAll(filepath.Dir(indexPath), 0o755)

	idx, err := bleve.Open(indexPath)
	if err != nil {
		idx, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, err
		}
	}

	be := &bleveEngine{store: store, idx: idx}
	if err := be.reindexAll(); err != nil {
		idx.Close()
		return nil, err
	}
	return be, nil
}

// buildIndexMapping analyzes terms without stop-word removal so that
// short words like "the" still complete.
func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	_ = im.AddCustomAnalyzer(termAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicodetok.Name,
		"token_filters": []string{lowercase.Name},
	})
	im.DefaultAnalyzer = termAnalyzer

	dm := bleve.NewDocumentMapping()

	term := bleve.NewTextFieldMapping()
	term.Analyzer = termAnalyzer
	term.Store = true
	term.IncludeTermVectors = false

	count := bleve.NewNumericFieldMapping()
	count.Store = true

	poster := bleve.NewTextFieldMapping()
	poster.Index = false
	poster.Store = true

	dm.AddFieldMappingsAt("term", term)
	dm.AddFieldMappingsAt("count", count)
	dm.AddFieldMappingsAt("poster_url", poster)

	im.DefaultMapping = dm
	return im
}

func trendDoc(t *storage.SearchTrend) map[string]any {
	return map[string]any{
		"term":       t.SearchTerm,
		"count":      float64(t.Count),
		"poster_url": t.PosterURL,
	}
}

func (b *bleveEngine) reindexAll() error {
	trends, err := b.store.ListTrends()
	if err != nil {
		return err
	}

	batch := b.idx.NewBatch()
	for _, t := range trends {
		_ = batch.Index(t.ID, trendDoc(t))
	}
	return b.idx.Batch(batch)
}

func (b *bleveEngine) Suggest(prefix string, limit int) ([]*Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || limit <= 0 {
		return []*Suggestion{}, nil
	}

	tokens := tokenize(prefix)
	if len(tokens) == 0 {
		return []*Suggestion{}, nil
	}

	// every typed word has to start some word of the term
	qs := make([]bleveQuery.Query, 0, len(tokens))
	for _, tok := range tokens {
		pq := bleve.NewPrefixQuery(tok)
		pq.SetField("term")
		qs = append(qs, pq)
	}

	size := limit * 5
	if size < 50 {
		size = 50
	}
	req := bleve.NewSearchRequestOptions(bleve.NewConjunctionQuery(qs...), size, 0, false)
	req.Fields = []string{"term", "count", "poster_url"}
	req.SortBy([]string{"-count", "_id"})

	res, err := b.idx.Search(req)
	if err != nil {
		return nil, err
	}

	out := make([]*Suggestion, 0, len(res.Hits))
	for _, h := range res.Hits {
		s := &Suggestion{}
		if t, ok := h.Fields["term"].(string); ok {
			s.Term = t
		}
		if c, ok := h.Fields["count"].(float64); ok {
			s.Count = int(c)
		}
		if p, ok := h.Fields["poster_url"].(string); ok {
			s.PosterURL = p
		}
		if s.Term == "" || strings.EqualFold(s.Term, prefix) {
			continue
		}
		s.Score = scoreTerm(s.Term, prefix, tokens)
		if s.Score == 0 {
			continue
		}
		out = append(out, s)
	}

	rank(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// OnTrendRecorded indexes the term or refreshes its count.
func (b *bleveEngine) OnTrendRecorded(t *storage.SearchTrend) {
	if t == nil || t.ID == "" {
		return
	}
	_ = b.idx.Index(t.ID, trendDoc(t))
}

// DocCount reports total documents in the index.
func (b *bleveEngine) DocCount() (int, error) {
	n, err := b.idx.DocCount()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (b *bleveEngine) Close() error {
	return b.idx.Close()
}
