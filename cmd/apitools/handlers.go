package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/sessatakuma/API-tools/pkg/accent"
	"github.com/sessatakuma/API-tools/pkg/jmdict"
	"github.com/sessatakuma/API-tools/pkg/nlb"
	"github.com/sessatakuma/API-tools/pkg/upstream"
	"github.com/sessatakuma/API-tools/pkg/yahoo"
)

// ErrorInfo follows the JSON-RPC error object convention: a numeric
// code plus a human readable message.
type ErrorInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// response is the envelope every endpoint answers with. Status mirrors
// the HTTP status code so bot clients that drop the transport layer
// still see it.
type response struct {
	Status int         `json:"status"`
	Result interface{} `json:"result"`
	Error  *ErrorInfo  `json:"error"`
}

type textRequest struct {
	Text string `json:"text"`
}

type wordRequest struct {
	Word string `json:"word"`
}

type sentenceRequest struct {
	Word string `json:"word"`
	ID   int64  `json:"id"`
}

type usageRequest struct {
	Word    string `json:"word"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

type furiganaWord struct {
	Surface  string            `json:"surface"`
	Furigana string            `json:"furigana"`
	Subword  []furiganaSubword `json:"subword,omitempty"`
}

type furiganaSubword struct {
	Surface  string `json:"surface"`
	Furigana string `json:"furigana"`
}

type sentenceResult struct {
	Word     string            `json:"word"`
	ID       int64             `json:"id"`
	Sentence []jmdict.Sentence `json:"sentence"`
}

func decodeRequest(r *http.Request, vPtr interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(vPtr); err != nil {
		return fmt.Errorf("invalid request body: %v", err)
	}
	return nil
}

// respondError sends the envelope with a filled error object. The
// empty argument is what result should look like on failure: some
// endpoints report an empty list, others null.
func (s *Server) respondError(w http.ResponseWriter, code int, message string, empty interface{}) {
	s.respondJSON(w, &response{
		Status: code,
		Result: empty,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}, code)
}

func (s *Server) respondUpstreamError(w http.ResponseWriter, err error, what string, empty interface{}) {
	code := upstream.StatusOf(err)
	s.logger.Error(what, zap.Error(err))
	s.respondError(w, code, err.Error(), empty)
}

func (s *Server) handleMarkFurigana() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req textRequest
		if err := decodeRequest(r, &req); err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error(), []furiganaWord{})
			return
		}
		if req.Text == "" {
			s.respondError(w, http.StatusBadRequest, "text field is required", []furiganaWord{})
			return
		}
		words, err := s.annotator.Furigana(r.Context(), req.Text)
		if err != nil {
			s.respondUpstreamError(w, err, "furigana annotation failed", []furiganaWord{})
			return
		}
		s.respondJSON(w, &response{
			Status: http.StatusOK,
			Result: fromYahooWords(words),
		}, http.StatusOK)
	}
}

func (s *Server) handleMarkAccent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req textRequest
		if err := decodeRequest(r, &req); err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error(), []accent.Word{})
			return
		}
		if req.Text == "" {
			s.respondError(w, http.StatusBadRequest, "text field is required", []accent.Word{})
			return
		}
		words, err := s.marker.Mark(r.Context(), req.Text)
		if err != nil {
			s.respondUpstreamError(w, err, "accent marking failed", []accent.Word{})
			return
		}
		if words == nil {
			words = []accent.Word{}
		}
		s.respondJSON(w, &response{
			Status: http.StatusOK,
			Result: words,
		}, http.StatusOK)
	}
}

func (s *Server) handleDictQuery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req wordRequest
		if err := decodeRequest(r, &req); err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		if req.Word == "" {
			s.respondError(w, http.StatusBadRequest, "word field is required", nil)
			return
		}
		entries, err := s.dict.Lookup(r.Context(), req.Word)
		if errors.Is(err, jmdict.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "No results found", nil)
			return
		}
		if err != nil {
			s.respondUpstreamError(w, err, "dictionary lookup failed", nil)
			return
		}
		s.respondJSON(w, &response{
			Status: http.StatusOK,
			Result: entries,
		}, http.StatusOK)
	}
}

func (s *Server) handleSentenceQuery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sentenceRequest
		if err := decodeRequest(r, &req); err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		if req.Word == "" || req.ID == 0 {
			s.respondError(w, http.StatusBadRequest, "word and id fields are required", nil)
			return
		}
		sentences, err := s.dict.Examples(r.Context(), req.Word, req.ID)
		if errors.Is(err, jmdict.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "No results found", nil)
			return
		}
		if err != nil {
			s.respondUpstreamError(w, err, "sentence query failed", nil)
			return
		}
		s.respondJSON(w, &response{
			Status: http.StatusOK,
			Result: &sentenceResult{
				Word:     req.Word,
				ID:       req.ID,
				Sentence: sentences,
			},
		}, http.StatusOK)
	}
}

func (s *Server) handleUsageQuery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req usageRequest
		if err := decodeRequest(r, &req); err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		if req.Word == "" {
			s.respondError(w, http.StatusBadRequest, "word field is required", nil)
			return
		}
		usages, err := s.usage.Search(r.Context(), req.Word, req.Page, req.PerPage)
		if err != nil {
			s.respondUpstreamError(w, err, "usage query failed", nil)
			return
		}
		if usages == nil {
			usages = []nlb.Usage{}
		}
		s.respondJSON(w, &response{
			Status: http.StatusOK,
			Result: usages,
		}, http.StatusOK)
	}
}

func fromYahooWords(words []yahoo.Word) []furiganaWord {
	result := make([]furiganaWord, 0, len(words))
	for i := range words {
		word := &words[i]
		entry := furiganaWord{
			Surface:  word.Surface,
			Furigana: word.Reading(),
		}
		for _, sub := range word.Subword {
			entry.Subword = append(entry.Subword, furiganaSubword{
				Surface:  sub.Surface,
				Furigana: sub.Furigana,
			})
		}
		result = append(result, entry)
	}
	return result
}
