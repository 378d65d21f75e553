package ingestion

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/scriptoria/loci/core"
)

// Document is one annotated passage as it arrives from an ingest file.
type Document struct {
	Text          string           `json:"text"`
	Source        string           `json:"source"`
	Author        string           `json:"author"`
	StructurePath []string         `json:"structure_path"`
	Metadata      DocumentMetadata `json:"metadata"`
}

// DocumentMetadata mirrors core.Metadata with the wire field names used
// by the annotation tooling.
type DocumentMetadata struct {
	Concepts          []string `json:"concepts"`
	Topics            []string `json:"topics"`
	DiscourseElements []string `json:"discourse_elements"`
	ScriptureRefs     []string `json:"scripture_references"`
	NamedEntities     []string `json:"named_entities"`
}

func (m DocumentMetadata) toCore() core.Metadata {
	return core.Metadata{
		Concepts:          m.Concepts,
		Topics:            m.Topics,
		DiscourseElements: m.DiscourseElements,
		ScriptureRefs:     m.ScriptureRefs,
		NamedEntities:     m.NamedEntities,
	}
}

// ReadDocuments reads JSON-lines documents from r. Blank lines are
// skipped; a malformed line fails the whole read with its line number.
func ReadDocuments(r io.Reader) ([]Document, error) {
	var docs []Document

	scanner := bufio.NewScanner(r)
	// Annotated passages can be long; allow lines up to 4 MiB.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var doc Document
		if err := json.Unmarshal([]byte(text), &doc); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}
