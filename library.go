// Copyright 2025 Scriptoria Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package loci

import (
	"context"
	"log/slog"

	"github.com/scriptoria/loci/ai"
	"github.com/scriptoria/loci/ai/openai"
	"github.com/scriptoria/loci/core"
	"github.com/scriptoria/loci/corpus"
	"github.com/scriptoria/loci/ingestion"
	"github.com/scriptoria/loci/rank"
	"github.com/scriptoria/loci/storage"
	"github.com/scriptoria/loci/storage/badger"
)

// Library is the top-level handle on a passage corpus: storage, AI
// services, ingestion, and ranking behind one open/close lifecycle.
type Library struct {
	backend     *badger.Backend
	passageRepo storage.PassageRepository
	provider    ai.AIProvider
	weights     rank.BoostWeights
	profile     rank.ScoringProfile
	logger      *slog.Logger
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	weights  rank.BoostWeights
	profile  rank.ScoringProfile
}

// WithAIConfig sets the AI service configuration used to build the
// default OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) LibraryOption {
	return func(o *libraryOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a pre-built AI provider, bypassing the default
// OpenAI-compatible one. Useful for tests.
func WithProvider(provider ai.AIProvider) LibraryOption {
	return func(o *libraryOptions) {
		o.provider = provider
	}
}

// WithBoostWeights overrides the default metadata boost weights.
func WithBoostWeights(w rank.BoostWeights) LibraryOption {
	return func(o *libraryOptions) {
		o.weights = w
	}
}

// WithScoringProfile sets the scoring profile used by Search.
func WithScoringProfile(p rank.ScoringProfile) LibraryOption {
	return func(o *libraryOptions) {
		o.profile = p
	}
}

// OpenLibrary opens (or creates) the corpus at filePath.
func OpenLibrary(filePath string, opts ...LibraryOption) (*Library, error) {
	return openLibrary(filePath, false, opts...)
}

// OpenMemoryLibrary opens an in-memory corpus that is discarded on Close.
func OpenMemoryLibrary(opts ...LibraryOption) (*Library, error) {
	return openLibrary("", true, opts...)
}

func openLibrary(filePath string, inMemory bool, opts ...LibraryOption) (*Library, error) {
	options := &libraryOptions{
		aiConfig: ai.DefaultConfig(),
		weights:  rank.DefaultBoostWeights(),
		profile:  rank.AdditiveProfile{},
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	passageRepo, err := badger.NewPassageRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			passageRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Library{
		backend:     backend,
		passageRepo: passageRepo,
		provider:    provider,
		weights:     options.weights,
		profile:     options.profile,
		logger:      slog.Default(),
	}, nil
}

func (l *Library) Close() error {
	if err := l.provider.Close(); err != nil {
		l.logger.Error("error closing AI provider", "err", err)
	}

	if err := l.passageRepo.Close(); err != nil {
		l.logger.Error("error closing passage repository", "err", err)
		return err
	}

	if err := l.backend.Close(); err != nil {
		l.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (l *Library) PassageRepository() storage.PassageRepository {
	return l.passageRepo
}

func (l *Library) Provider() ai.AIProvider {
	return l.provider
}

func (l *Library) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(l.passageRepo, l.provider, opts...)
}

func (l *Library) NewRanker(opts ...rank.Option) (*rank.Ranker, error) {
	base := []rank.Option{
		rank.WithWeights(l.weights),
		rank.WithProfile(l.profile),
	}
	return rank.NewRanker(append(base, opts...)...)
}

// Snapshot loads the full corpus in ingestion order for ranking.
// Passages still awaiting their embedding are skipped with a warning.
func (l *Library) Snapshot(ctx context.Context) (*corpus.Snapshot, error) {
	passages, err := l.passageRepo.GetAllPassages(ctx)
	if err != nil {
		return nil, err
	}

	embedded := passages[:0]
	for _, p := range passages {
		if len(p.Vector) == 0 {
			l.logger.Warn("skipping passage without embedding", "id", p.Id, "source", p.Source)
			continue
		}
		embedded = append(embedded, p)
	}

	return corpus.NewSnapshot(embedded)
}

// Sources returns the corpus source catalog.
func (l *Library) Sources(ctx context.Context) ([]storage.SourceInfo, error) {
	return l.passageRepo.Sources(ctx)
}

// ResearchResult is the outcome of an end-to-end Search.
type ResearchResult struct {
	Analysis *ai.QueryAnalysis
	Results  []*core.ScoredResult
}

// Search runs the full research flow for a natural-language query:
// the query is analyzed for filters, embedded, and ranked against the
// corpus. sourceAllowlist restricts scoring to the named sources; nil
// means the whole corpus.
func (l *Library) Search(ctx context.Context, query string, sourceAllowlist []string, opts ...rank.Option) (*ResearchResult, error) {
	analysis, err := l.provider.QueryAnalyzer().AnalyzeQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	vector, err := l.provider.Embedder().EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	snap, err := l.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	ranker, err := l.NewRanker(opts...)
	if err != nil {
		return nil, err
	}
	defer ranker.Close()

	qc := &core.QueryContext{
		Query:           query,
		Vector:          vector,
		Filters:         analysis.Filters,
		SourceAllowlist: sourceAllowlist,
	}

	results, err := ranker.Rank(ctx, qc, snap)
	if err != nil {
		return nil, err
	}

	return &ResearchResult{Analysis: analysis, Results: results}, nil
}

// Summarize produces a grounded synthesis of ranked results for a query.
func (l *Library) Summarize(ctx context.Context, query string, results []*core.ScoredResult) (*ai.ResearchSummary, error) {
	return l.provider.Summarizer().Summarize(ctx, query, results)
}
