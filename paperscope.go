// Copyright 2025 Tecla Labs
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


package paperscope

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/teclalabs/paperscope/ai"
	"github.com/teclalabs/paperscope/ai/openai"
	"github.com/teclalabs/paperscope/corpus"
	"github.com/teclalabs/paperscope/ingest"
	"github.com/teclalabs/paperscope/search"
	"github.com/teclalabs/paperscope/storage"
	"github.com/teclalabs/paperscope/storage/badger"
)

// DefaultOriginURL is the canonical location of the published corpus document.
const DefaultOriginURL = "https://storage.googleapis.com/tecla/cvpr2025_papers.json"

// Engine wires together storage, the corpus loader, and the AI provider.
// It is the top-level entry point for embedding applications.
type Engine struct {
	backend  *badger.Backend
	papers   storage.PaperRepository
	provider ai.Provider
	loader   *corpus.Loader
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig  *ai.Config
	originURL string
	maxAge    time.Duration
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithOriginURL sets the corpus origin URL.
// Default is DefaultOriginURL.
func WithOriginURL(url string) EngineOption {
	return func(o *engineOptions) {
		if url != "" {
			o.originURL = url
		}
	}
}

// WithCorpusMaxAge sets how long a cached corpus snapshot stays fresh.
// Default is corpus.DefaultMaxAge.
func WithCorpusMaxAge(maxAge time.Duration) EngineOption {
	return func(o *engineOptions) {
		o.maxAge = maxAge
	}
}

// NewEngine opens an engine rooted at dataDir. The vector index lives in
// dataDir/index and the corpus snapshot at dataDir/corpus.json.
func NewEngine(dataDir string, opts ...EngineOption) (*Engine, error) {
	// Apply options
	options := &engineOptions{
		aiConfig:  ai.DefaultConfig(),
		originURL: DefaultOriginURL,
		maxAge:    corpus.DefaultMaxAge,
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filepath.Join(dataDir, "index"), false)
	if err != nil {
		return nil, err
	}

	// Create paper repository
	papers := badger.NewPaperRepository(backend)

	// Create AI provider with configured settings
	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		papers.Close()
		backend.Close()
		return nil, err
	}

	// Create the corpus loader
	origin, err := corpus.NewOriginClient(options.originURL)
	if err != nil {
		provider.Close()
		papers.Close()
		backend.Close()
		return nil, err
	}
	loader, err := corpus.NewLoader(origin, filepath.Join(dataDir, "corpus.json"),
		corpus.WithMaxAge(options.maxAge))
	if err != nil {
		provider.Close()
		papers.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:  backend,
		papers:   papers,
		provider: provider,
		loader:   loader,
		logger:   slog.Default(),
	}, nil
}

func (e *Engine) Close() error {
	// Close AI provider first
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	// Close repository
	if err := e.papers.Close(); err != nil {
		e.logger.Error("error closing paper repository", "err", err)
		return err
	}

	// Close backend
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (e *Engine) PaperRepository() storage.PaperRepository {
	return e.papers
}

func (e *Engine) Corpus() *corpus.Loader {
	return e.loader
}

func (e *Engine) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(e.papers, e.loader, e.provider, opts...)
}

func (e *Engine) NewIngestionPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(e.papers, e.provider, opts...)
}
