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


package corpus

import "errors"

var (
	// ErrFetcherRequired is returned when a corpus fetcher is not provided.
	ErrFetcherRequired = errors.New("corpus fetcher required")

	// ErrCachePathRequired is returned when a cache file path is not provided.
	ErrCachePathRequired = errors.New("cache path required")

	// ErrOriginURLRequired is returned when an origin URL is not provided.
	ErrOriginURLRequired = errors.New("origin URL required")

	// ErrInvalidMaxAge is returned when a non-positive cache age is configured.
	ErrInvalidMaxAge = errors.New("max age must be positive")
)
