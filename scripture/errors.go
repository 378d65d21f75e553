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


package scripture

import "errors"

var (
	// ErrUnknownBook indicates the book name could not be resolved to one
	// of the 66 canonical books.
	ErrUnknownBook = errors.New("unknown book name")

	// ErrMalformedReference indicates the reference string could not be
	// parsed at all (empty input, garbage after the verse, etc).
	ErrMalformedReference = errors.New("malformed scripture reference")
)
