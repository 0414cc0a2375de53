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


// Package search provides two-stage semantic search over the paper corpus.
//
// The Searcher type implements a retrieval pipeline that combines:
//   - Vector similarity search over stored paper embeddings
//   - Language model re-ranking with per-paper match explanations
//
// The vector stage narrows the corpus to a small candidate set; the ranker
// selects the best matches and explains why each was chosen. Stage failures
// degrade to an empty result set rather than surfacing errors to callers.
package search
