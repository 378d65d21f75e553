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


// Package rank implements hybrid relevance ranking over a corpus
// snapshot. Each candidate passage receives:
//
//   - a cosine similarity score against the query embedding, clamped
//     to [0, 1]
//   - a metadata boost from exact matches between the query's suggested
//     filters and the passage metadata, with tiered scripture matching
//     and per-tier caps
//
// A scoring profile combines the two signals into one relevance score.
// The additive profile sums them; the weighted profile folds in exact
// phrase hits from the raw query text. Results are ordered by combined
// score descending with corpus insertion order as the tie-breaker, so
// identical inputs always produce identical rankings.
package rank
