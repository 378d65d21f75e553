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


// Package ai defines the interfaces for the AI services the library
// depends on: text embedding, query analysis (turning a research
// question into suggested metadata filters), and research summary
// generation over ranked passages.
//
// Implementations live in subpackages: openai provides clients for any
// OpenAI-compatible API, mock provides deterministic test doubles.
package ai
