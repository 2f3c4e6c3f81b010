package jmdict

import (
	"context"
)

//go:generate go run github.com/vektra/mockery/cmd/mockery -name Dictionary -output ../mocks/

type Dictionary interface {
	Lookup(ctx context.Context, word string) ([]*Entry, error)
	Examples(ctx context.Context, word string, id int64) ([]Sentence, error)
	Close(ctx context.Context) error
}
