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


package search

import "errors"

var (
	// ErrPaperRepositoryRequired is returned when a paper repository is not provided.
	ErrPaperRepositoryRequired = errors.New("paper repository required")

	// ErrCorpusProviderRequired is returned when a corpus provider is not provided.
	ErrCorpusProviderRequired = errors.New("corpus provider required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrInvalidCandidateLimit is returned when a non-positive candidate limit is configured.
	ErrInvalidCandidateLimit = errors.New("candidate limit must be positive")

	// ErrInvalidTimeout is returned when a non-positive stage timeout is configured.
	ErrInvalidTimeout = errors.New("timeout must be positive")
)
