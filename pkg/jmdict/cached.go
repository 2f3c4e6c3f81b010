package jmdict

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v2"
)

//go:generate go run github.com/vektra/mockery/cmd/mockery -name QueryInterface -output ../mocks/

type QueryInterface interface {
	Lookup(ctx context.Context, word string) ([]*Entry, error)
	Examples(ctx context.Context, word string, id int64) ([]Sentence, error)
	Close(ctx context.Context) error
}

// Cached is a read-through cache over a dictionary querier. Dictionary
// content barely changes, so hits and not-found outcomes are both
// cached; transient upstream failures are not.
type Cached struct {
	querier QueryInterface
	storage *Storage
}

func NewCached(querier QueryInterface, storage *badger.DB) *Cached {
	return &Cached{
		querier: querier,
		storage: &Storage{DB: storage},
	}
}

func (c *Cached) Lookup(ctx context.Context, word string) ([]*Entry, error) {
	cached, err := c.storage.GetEntries(word)
	if err == nil {
		return cached.Return()
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return nil, err
	}
	entries, err := c.querier.Lookup(ctx, word)
	if cacheable(err) {
		// Storage failure only costs the cache entry.
		_ = c.storage.PutEntries(word, entries, err)
	}
	return entries, err
}

func (c *Cached) Examples(ctx context.Context, word string, id int64) ([]Sentence, error) {
	cached, err := c.storage.GetExamples(word, id)
	if err == nil {
		return cached.Return()
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return nil, err
	}
	sentences, err := c.querier.Examples(ctx, word, id)
	if cacheable(err) {
		_ = c.storage.PutExamples(word, id, sentences, err)
	}
	return sentences, err
}

func cacheable(err error) bool {
	return err == nil || errors.Is(err, ErrNotFound)
}

func (c *Cached) Close(ctx context.Context) error {
	var errs []string
	if closeErr := c.querier.Close(ctx); closeErr != nil {
		errs = append(errs, "querier close failed: "+closeErr.Error())
	}
	if closeErr := c.storage.Close(); closeErr != nil {
		errs = append(errs, "storage close failed: "+closeErr.Error())
	}
	if len(errs) != 0 {
		return fmt.Errorf("while closing next errors happend: %s", strings.Join(errs, " AND "))
	}
	return nil
}
