package jmdict

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
)

func getStorage(t *testing.T) *Storage {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("can not open badger: %v", err)
	}
	return &Storage{DB: db}
}
