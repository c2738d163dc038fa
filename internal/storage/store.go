package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var trendsBucket = []byte("search_trends")

// ErrNotFound is returned when a document id has no entry.
var ErrNotFound = errors.New("document not found")

const defaultTimeout = 1 * time.Second

type Store struct {
	db  *bolt.DB
	now func() time.Time
}

type storeOptions struct {
	timeout time.Duration
}

type Option func(*storeOptions)

// WithTimeout sets how long NewStore waits for the file lock.
func WithTimeout(d time.Duration) Option {
	return func(o *storeOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func NewStore(dbPath string, opts ...Option) (*Store, error) {
	o := storeOptions{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: o.timeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(trendsBucket)
		return createErr
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ListTrends returns the documents matching opts. Without ordering the
// result follows key order.
func (s *Store) ListTrends(opts ...QueryOption) ([]*SearchTrend, error) {
	var q trendQuery
	for _, opt := range opts {
		opt(&q)
	}

	trends := []*SearchTrend{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(trendsBucket)
		return b.ForEach(func(k, v []byte) error {
			var trend SearchTrend
			if err := json.Unmarshal(v, &trend); err != nil {
				return fmt.Errorf("decoding trend %s: %w", k, err)
			}
			if q.searchTerm != nil && trend.SearchTerm != *q.searchTerm {
				return nil
			}
			trends = append(trends, &trend)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing trends: %w", err)
	}

	if q.orderByDesc {
		sort.SliceStable(trends, func(i, j int) bool {
			return trends[i].Count > trends[j].Count
		})
	}
	if q.limit > 0 && len(trends) > q.limit {
		trends = trends[:q.limit]
	}
	return trends, nil
}

func (s *Store) GetTrend(id string) (*SearchTrend, error) {
	var trend SearchTrend
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(trendsBucket).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("trend %s: %w", id, ErrNotFound)
		}
		return json.Unmarshal(data, &trend)
	})
	if err != nil {
		return nil, err
	}
	return &trend, nil
}

// CreateTrend stores a new document under a generated id and returns the
// stored copy. The id, timestamps and any preset ID on t are overwritten.
func (s *Store) CreateTrend(t *SearchTrend) (*SearchTrend, error) {
	if strings.TrimSpace(t.SearchTerm) == "" {
		return nil, fmt.Errorf("creating trend: empty search term")
	}

	doc := *t
	doc.ID = uuid.NewString()
	doc.CreatedAt = s.now()
	doc.UpdatedAt = doc.CreatedAt

	err := s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(&doc)
		if err != nil {
			return err
		}
		return tx.Bucket(trendsBucket).Put([]byte(doc.ID), data)
	})
	if err != nil {
		return nil, fmt.Errorf("creating trend: %w", err)
	}
	return &doc, nil
}

// UpdateTrendCount sets the count of an existing document. No other field
// besides the update timestamp changes.
func (s *Store) UpdateTrendCount(id string, count int) (*SearchTrend, error) {
	var trend SearchTrend
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(trendsBucket)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("trend %s: %w", id, ErrNotFound)
		}
		if err := json.Unmarshal(data, &trend); err != nil {
			return err
		}

		trend.Count = count
		trend.UpdatedAt = s.now()

		data, err := json.Marshal(&trend)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), data)
	})
	if err != nil {
		return nil, fmt.Errorf("updating trend: %w", err)
	}
	return &trend, nil
}
