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


package rank

import "errors"

var (
	// ErrSnapshotRequired is returned when a corpus snapshot is not provided.
	ErrSnapshotRequired = errors.New("corpus snapshot required")

	// ErrInvalidWeights is returned when boost weights fail validation.
	ErrInvalidWeights = errors.New("invalid boost weights")

	// ErrUnknownProfile is returned when a scoring profile name does not
	// match any registered profile.
	ErrUnknownProfile = errors.New("unknown scoring profile")
)
