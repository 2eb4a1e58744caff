// Package parser reads and edits notebook documents at the JSON level.
package parser

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/ukaji3/nbappend-go/pkg/nbappend/models"
)

var (
	// ErrMalformedJSON indicates the document is not well-formed JSON.
	ErrMalformedJSON = errors.New("malformed JSON")
	// ErrNotObject indicates the top-level value is not a JSON object.
	ErrNotObject = errors.New("top-level value is not an object")
	// ErrMissingCells indicates the document has no "cells" field.
	ErrMissingCells = errors.New(`missing "cells" field`)
	// ErrCellsNotArray indicates the "cells" field is not a list.
	ErrCellsNotArray = errors.New(`"cells" field is not a list`)
)

// appendPath is the sjson path that appends to the end of the cells array.
const appendPath = "cells.-1"

// Document is a notebook held as raw JSON. Fields and cells the tool does not
// touch are kept exactly as they were read.
type Document struct {
	raw []byte
}

// ParseNotebook validates data as a notebook document with a cells list.
func ParseNotebook(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedJSON
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrNotObject
	}

	cells := root.Get("cells")
	if !cells.Exists() {
		return nil, ErrMissingCells
	}
	if !cells.IsArray() {
		return nil, ErrCellsNotArray
	}

	raw := make([]byte, len(data))
	copy(raw, data)
	return &Document{raw: raw}, nil
}

// Len returns the number of cells in the document.
func (d *Document) Len() int {
	return int(gjson.GetBytes(d.raw, "cells.#").Int())
}

// Append adds cells after all existing cells, in the given order.
func (d *Document) Append(cells ...models.Cell) error {
	for i, cell := range cells {
		value, err := models.Encode(cell)
		if err != nil {
			return fmt.Errorf("encoding new cell %d: %w", i, err)
		}
		raw, err := sjson.SetRawBytes(d.raw, appendPath, value)
		if err != nil {
			return fmt.Errorf("appending new cell %d: %w", i, err)
		}
		d.raw = raw
	}
	return nil
}

// RawCells returns the JSON text of every cell, in document order.
func (d *Document) RawCells() []string {
	var result []string
	gjson.GetBytes(d.raw, "cells").ForEach(func(_, cell gjson.Result) bool {
		result = append(result, cell.Raw)
		return true
	})
	return result
}

// Bytes returns the document JSON as currently held.
func (d *Document) Bytes() []byte {
	return d.raw
}

// Summaries describes every cell in the document.
func (d *Document) Summaries() []models.CellSummary {
	var result []models.CellSummary
	index := 0
	gjson.GetBytes(d.raw, "cells").ForEach(func(_, cell gjson.Result) bool {
		result = append(result, summarizeCell(index, cell))
		index++
		return true
	})
	return result
}

func summarizeCell(index int, cell gjson.Result) models.CellSummary {
	summary := models.CellSummary{
		Index:    index,
		CellType: cell.Get("cell_type").String(),
		Outputs:  int(cell.Get("outputs.#").Int()),
	}

	// nbformat allows source as either a list of lines or a single string
	var lines []string
	source := cell.Get("source")
	if source.IsArray() {
		for _, line := range source.Array() {
			lines = append(lines, line.String())
		}
	} else if source.Type == gjson.String {
		lines = SplitLines(source.String())
	}

	summary.Lines = len(lines)
	if len(lines) > 0 {
		summary.FirstLine = trimTerminator(lines[0])
	}

	if count := cell.Get("execution_count"); count.Type == gjson.Number {
		n := int(count.Int())
		summary.ExecutionCount = &n
	}

	return summary
}
