package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dgraph-io/badger/v2"
	"github.com/go-chi/chi"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sessatakuma/API-tools/pkg/accent"
	"github.com/sessatakuma/API-tools/pkg/jmdict"
	"github.com/sessatakuma/API-tools/pkg/nlb"
	"github.com/sessatakuma/API-tools/pkg/ojad"
	"github.com/sessatakuma/API-tools/pkg/yahoo"
)

type Annotator interface {
	Furigana(ctx context.Context, text string) ([]yahoo.Word, error)
}

type AccentMarker interface {
	Mark(ctx context.Context, text string) ([]accent.Word, error)
}

type UsageSearcher interface {
	Search(ctx context.Context, word string, page, perPage int) ([]nlb.Usage, error)
}

type Server struct {
	http.Server
	conf      *Config
	logger    *zap.Logger
	annotator Annotator
	marker    AccentMarker
	dict      jmdict.Dictionary
	usage     UsageSearcher
}

func New(logger *zap.Logger, conf *Config) (*Server, error) {
	// One shared client for every upstream. Redirects stay visible to
	// the dictionary querier, which reads entry ids off them.
	client := &http.Client{
		Timeout: conf.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	annotator := yahoo.NewClient(client, &conf.Yahoo)
	phraser := ojad.NewClient(client, &conf.OJAD)

	var dict jmdict.Dictionary
	remote := jmdict.NewRemote(client, nil, &conf.JMdict)
	dict = remote
	if conf.Cache.Path != "" || conf.Cache.InMemory {
		options := badger.DefaultOptions(conf.Cache.Path).
			WithInMemory(conf.Cache.InMemory).
			WithLogger(nil)
		db, err := badger.Open(options)
		if err != nil {
			return nil, fmt.Errorf("can not open cache: %w", err)
		}
		dict = jmdict.NewCached(remote, db)
	}

	s := Server{
		conf:      conf,
		logger:    logger,
		annotator: annotator,
		marker:    accent.NewMarker(annotator, phraser),
		dict:      dict,
		usage:     nlb.NewClient(client, &conf.NLB),
	}

	router := chi.NewRouter()
	router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)
	router.Use(s.middleLogging)
	router.Post("/api/MarkAccent/", s.handleMarkAccent())
	router.Post("/api/MarkFurigana/", s.handleMarkFurigana())
	router.Post("/api/DictQuery/", s.handleDictQuery())
	router.Post("/api/SentenceQuery/", s.handleSentenceQuery())
	router.Post("/api/UsageQuery/", s.handleUsageQuery())

	s.Addr = conf.Host
	s.Server.Handler = router
	return &s, nil
}

func (s *Server) Close(ctx context.Context) error {
	var reasons []string
	if serverErr := s.Server.Shutdown(ctx); serverErr != nil {
		reasons = append(reasons, "server shutdown failed: "+serverErr.Error())
	}
	if dictErr := s.dict.Close(ctx); dictErr != nil {
		reasons = append(reasons, "dictionary close failed: "+dictErr.Error())
	}
	if len(reasons) > 0 {
		return fmt.Errorf("close failed because: %s", strings.Join(reasons, " AND "))
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, vPtr interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	buffer := new(bytes.Buffer)
	if err := json.NewEncoder(buffer).Encode(vPtr); err != nil {
		s.logger.Error("encodig failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"encoding error"}`))
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(buffer.Bytes())
}

func (s *Server) middleLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Info("request",
			zap.String("path", r.URL.Path),
			zap.String("client", r.RemoteAddr),
			zap.String("method", r.Method),
		)
		next.ServeHTTP(w, r)
	})
}
