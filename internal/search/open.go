package search

import (
	"github.com/pders01/reel/internal/debuglog"
)

// Open returns the bleve engine at indexPath, falling back to the
// in-memory engine when the path is empty or the index cannot be opened.
func Open(store TrendSource, indexPath string) Suggester {
	if indexPath == "" {
		return NewEngine(store)
	}

	s, err := NewBleveEngine(store, indexPath)
	if err != nil {
		debuglog.WithFields(debuglog.Fields{"index": indexPath}).
			Warnf("suggestion index unavailable, using in-memory engine: %v", err)
		return NewEngine(store)
	}

	if ds, ok := s.(DebugStatser); ok {
		if n, err := ds.DocCount(); err == nil {
			debuglog.Infof("suggestion index ready with %d terms", n)
		}
	}
	return s
}
