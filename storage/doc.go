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


// Package storage defines the persistence interfaces for the passage
// corpus and the serialization helpers shared by all backends.
//
// Repositories are thread-safe and support concurrent access. Passages
// are addressed by content-based IDs, so re-ingesting the same source
// text is idempotent. Retrieval in ingestion order is part of the
// contract: ranking ties are broken by it.
package storage
