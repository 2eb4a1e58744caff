// Package models defines data structures for notebook documents.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CellType is the notebook cell_type tag.
type CellType string

const (
	// CellMarkdown is a narrative cell.
	CellMarkdown CellType = "markdown"
	// CellCode is an executable cell.
	CellCode CellType = "code"
)

// Valid reports whether t is a cell type this tool can author.
func (t CellType) Valid() bool {
	return t == CellMarkdown || t == CellCode
}

// Cell represents a single notebook cell ready to be appended.
type Cell struct {
	// CellType is the variant tag (markdown or code).
	CellType CellType
	// Metadata is opaque cell metadata. Nil is written as an empty object.
	Metadata map[string]interface{}
	// Source is the ordered list of text lines, each but the last ending in "\n".
	Source []string
}

// markdownCell and codeCell fix the key order written to disk.
type markdownCell struct {
	CellType CellType               `json:"cell_type"`
	Metadata map[string]interface{} `json:"metadata"`
	Source   []string               `json:"source"`
}

type codeCell struct {
	CellType       CellType               `json:"cell_type"`
	ExecutionCount *int                   `json:"execution_count"`
	Metadata       map[string]interface{} `json:"metadata"`
	Outputs        []json.RawMessage      `json:"outputs"`
	Source         []string               `json:"source"`
}

// MarshalJSON writes the cell in nbformat shape. Code cells always carry a
// null execution_count and an empty outputs list since they have never run.
func (c Cell) MarshalJSON() ([]byte, error) {
	metadata := c.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	source := c.Source
	if source == nil {
		source = []string{}
	}

	switch c.CellType {
	case CellMarkdown:
		return Encode(markdownCell{
			CellType: c.CellType,
			Metadata: metadata,
			Source:   source,
		})
	case CellCode:
		return Encode(codeCell{
			CellType: c.CellType,
			Metadata: metadata,
			Outputs:  []json.RawMessage{},
			Source:   source,
		})
	default:
		return nil, fmt.Errorf("unsupported cell type %q", c.CellType)
	}
}

// Encode marshals v as compact JSON without escaping <, > and &, matching how
// notebook files are normally written.
func Encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
