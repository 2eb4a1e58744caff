// Package output renders notebook documents and reports.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Format re-indents a JSON document with indent spaces per level.
// Key order and values are kept as is. No trailing newline is added.
func Format(raw []byte, indent int) ([]byte, error) {
	if indent < 0 {
		return nil, fmt.Errorf("invalid indent %d", indent)
	}
	var buf bytes.Buffer
	raw = bytes.TrimRight(raw, " \t\r\n")
	if err := json.Indent(&buf, raw, "", strings.Repeat(" ", indent)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
