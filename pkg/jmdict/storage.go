package jmdict

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"
)

type keyType byte

const (
	entryKey keyType = iota + 1
	exampleKey
)

type cachedEntries struct {
	Entries  []*Entry `json:"entries,omitempty"`
	NotFound bool     `json:"not_found,omitempty"`
}

func (c *cachedEntries) Return() ([]*Entry, error) {
	if c.NotFound {
		return nil, ErrNotFound
	}
	return c.Entries, nil
}

type cachedExamples struct {
	Sentences []Sentence `json:"sentences,omitempty"`
	NotFound  bool       `json:"not_found,omitempty"`
}

func (c *cachedExamples) Return() ([]Sentence, error) {
	if c.NotFound {
		return nil, ErrNotFound
	}
	return c.Sentences, nil
}

type Storage struct {
	DB *badger.DB
}

func (s *Storage) GetEntries(word string) (*cachedEntries, error) {
	var cached cachedEntries
	if err := s.get(marshalKey(word, entryKey), &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

func (s *Storage) PutEntries(word string, entries []*Entry, queryErr error) error {
	return s.put(marshalKey(word, entryKey), &cachedEntries{
		Entries:  entries,
		NotFound: errors.Is(queryErr, ErrNotFound),
	})
}

func (s *Storage) GetExamples(word string, id int64) (*cachedExamples, error) {
	var cached cachedExamples
	if err := s.get(marshalKey(exampleRawKey(word, id), exampleKey), &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

func (s *Storage) PutExamples(word string, id int64, sentences []Sentence, queryErr error) error {
	return s.put(marshalKey(exampleRawKey(word, id), exampleKey), &cachedExamples{
		Sentences: sentences,
		NotFound:  errors.Is(queryErr, ErrNotFound),
	})
}

func (s *Storage) get(key []byte, vPtr interface{}) error {
	return s.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, vPtr)
		})
	})
}

func (s *Storage) put(key []byte, vPtr interface{}) error {
	value, err := json.Marshal(vPtr)
	if err != nil {
		return fmt.Errorf("can not encode cached value: %w", err)
	}
	return s.DB.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func exampleRawKey(word string, id int64) string {
	return fmt.Sprintf("%s#%d", word, id)
}

func marshalKey(k string, t keyType) []byte {
	result := make([]byte, 0, len(k)+1)
	result = append(result, byte(t))
	return append(result, []byte(k)...)
}

func unmarshalKey(data []byte, expected keyType) (string, error) {
	if len(data) < 1 {
		return "", errors.New("key lenght must be at least 1")
	}
	if data[0] != byte(expected) {
		return "", fmt.Errorf("key type doesn't equal to expected type")
	}
	return string(data[1:]), nil
}
