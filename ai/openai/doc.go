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


// Package openai implements the ai interfaces against OpenAI-compatible APIs.
//
// Both the embedder and the ranker talk to any service exposing the OpenAI
// wire format (OpenAI itself, Ollama, LocalAI, vLLM, and similar). The
// ranker sends a single ranking prompt per query with JSON mode enabled and
// parses the response defensively: code fences are stripped, common JSON
// slips repaired, and parsing is retried a bounded number of times before
// the query is given up as malformed.
package openai
