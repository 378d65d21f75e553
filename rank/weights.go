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

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BoostWeights holds the metadata boost increments and caps. The zero
// value is not usable; start from DefaultBoostWeights or LoadBoostWeights.
type BoostWeights struct {
	// Per-match increments for category filters.
	ConceptMatch   float32 `yaml:"concept_match"`
	DiscourseMatch float32 `yaml:"discourse_match"`
	EntityMatch    float32 `yaml:"entity_match"`

	// Tiered scripture matching. Each filter reference contributes at
	// its most specific matching tier only; each tier accumulates up to
	// its cap.
	VerseMatch   float32 `yaml:"verse_match"`
	VerseCap     float32 `yaml:"verse_cap"`
	ChapterMatch float32 `yaml:"chapter_match"`
	ChapterCap   float32 `yaml:"chapter_cap"`
	BookMatch    float32 `yaml:"book_match"`
	BookCap      float32 `yaml:"book_cap"`

	// TotalCap bounds the whole boost, categories and scripture combined.
	TotalCap float32 `yaml:"total_cap"`
}

// DefaultBoostWeights returns the production defaults.
func DefaultBoostWeights() BoostWeights {
	return BoostWeights{
		ConceptMatch:   0.15,
		DiscourseMatch: 0.12,
		EntityMatch:    0.10,
		VerseMatch:     0.5,
		VerseCap:       1.0,
		ChapterMatch:   0.3,
		ChapterCap:     0.6,
		BookMatch:      0.15,
		BookCap:        0.3,
		TotalCap:       1.5,
	}
}

// LoadBoostWeights reads boost weights from a YAML file. Fields absent
// from the file keep their default values; environment variables in the
// file are expanded before parsing.
func LoadBoostWeights(path string) (BoostWeights, error) {
	w := DefaultBoostWeights()

	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("reading weights file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &w); err != nil {
		return w, fmt.Errorf("parsing weights file: %w", err)
	}

	if err := w.Validate(); err != nil {
		return w, err
	}
	return w, nil
}

// Validate checks that the weights are internally consistent.
func (w BoostWeights) Validate() error {
	for name, v := range map[string]float32{
		"concept_match":   w.ConceptMatch,
		"discourse_match": w.DiscourseMatch,
		"entity_match":    w.EntityMatch,
		"verse_match":     w.VerseMatch,
		"chapter_match":   w.ChapterMatch,
		"book_match":      w.BookMatch,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s is negative", ErrInvalidWeights, name)
		}
	}
	if w.VerseCap < w.VerseMatch {
		return fmt.Errorf("%w: verse_cap below verse_match", ErrInvalidWeights)
	}
	if w.ChapterCap < w.ChapterMatch {
		return fmt.Errorf("%w: chapter_cap below chapter_match", ErrInvalidWeights)
	}
	if w.BookCap < w.BookMatch {
		return fmt.Errorf("%w: book_cap below book_match", ErrInvalidWeights)
	}
	if w.TotalCap <= 0 {
		return fmt.Errorf("%w: total_cap must be positive", ErrInvalidWeights)
	}
	return nil
}
