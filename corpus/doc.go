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


// Package corpus fetches and caches the paper corpus metadata.
//
// The corpus is published as a single JSON document keyed by paper title.
// Loader keeps a local snapshot on disk with a 24 hour time-to-live so
// query latency does not depend on the origin's availability: a fresh
// cache is served without touching the network, a stale cache triggers a
// refresh, and a failed refresh falls back to whatever snapshot exists.
// Cache writes use write-then-rename, so concurrent refreshes are safe
// (last write wins) and a torn file is never treated as valid.
package corpus
