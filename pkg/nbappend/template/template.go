// Package template holds the cell sets appended to notebooks.
package template

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/afero"
	"github.com/ukaji3/nbappend-go/pkg/nbappend/models"
	"github.com/ukaji3/nbappend-go/pkg/nbappend/parser"
	"gopkg.in/yaml.v3"
)

//go:embed country_selection.yaml
var defaultTemplateYAML []byte

// ErrNoCells indicates a template without any cells.
var ErrNoCells = errors.New("template has no cells")

// Template is an ordered set of cells to append. Order matters: later cells
// may use variables defined by earlier ones.
type Template struct {
	// Name identifies the template.
	Name string `yaml:"name" json:"name,omitempty" jsonschema:"description=Template identifier"`
	// Description says what the cells do.
	Description string `yaml:"description" json:"description,omitempty"`
	// Cells are appended in this order.
	Cells []CellSpec `yaml:"cells" json:"cells" jsonschema:"minItems=1"`
}

// CellSpec is a single authored cell. Source is one text block; it is split
// into notebook lines when the cell is built.
type CellSpec struct {
	CellType models.CellType        `yaml:"cell_type" json:"cell_type" jsonschema:"enum=markdown,enum=code"`
	Metadata map[string]interface{} `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Source   string                 `yaml:"source" json:"source"`
}

// Default returns the embedded country-selection template.
func Default() *Template {
	t, err := Parse(defaultTemplateYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded template is invalid: %v", err))
	}
	return t
}

// Load reads a template file. YAML and JSON are both accepted.
func Load(fs afero.Fs, path string) (*Template, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates template data.
func Parse(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decoding template: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that the template has cells of supported types.
func (t *Template) Validate() error {
	if len(t.Cells) == 0 {
		return ErrNoCells
	}
	for i, c := range t.Cells {
		if !c.CellType.Valid() {
			return fmt.Errorf("cell %d: unsupported cell_type %q (must be markdown or code)", i, c.CellType)
		}
	}
	return nil
}

// Build returns the notebook cells in template order.
func (t *Template) Build() []models.Cell {
	cells := make([]models.Cell, 0, len(t.Cells))
	for _, spec := range t.Cells {
		cells = append(cells, models.Cell{
			CellType: spec.CellType,
			Metadata: spec.Metadata,
			Source:   parser.SplitLines(spec.Source),
		})
	}
	return cells
}

// Schema returns the JSON Schema describing template files.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
	}
	return json.MarshalIndent(r.Reflect(&Template{}), "", "  ")
}
