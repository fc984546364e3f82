package widget

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kaptinlin/jsonschema"
	"github.com/scom-repos/scom-scatter-chart-sub000/datasource"
)

// M is a JSON object tree.
type M = map[string]interface{}

// Schema pairs a JSON schema with the UI schema of its form.
type Schema struct {
	DataSchema M `json:"dataSchema"`
	UISchema   M `json:"uiSchema"`
}

// FormSchema holds the forms of the page builder and of an embedded widget.
type FormSchema struct {
	BuilderSchema Schema `json:"builderSchema"`
	EmbededSchema Schema `json:"embededSchema"`
}

// Registration seeds a new widget instance in a page builder.
type Registration struct {
	Types       string `json:"types"`
	DefaultData Data   `json:"defaultData"`
}

// Register returns the configuration schema text and the default data.
func Register() Registration {
	types, err := json.MarshalIndent(dataSchema(nil), "", "  ")
	if err != nil {
		types = []byte("{}")
	}
	return Registration{Types: string(types), DefaultData: DefaultData()}
}

// GetFormSchema returns the editing forms. Column pickers offer columns.
func GetFormSchema(columns []string) FormSchema {
	return FormSchema{
		BuilderSchema: Schema{DataSchema: dataSchema(columns), UISchema: builderUISchema()},
		EmbededSchema: Schema{DataSchema: embededDataSchema(columns), UISchema: embededUISchema()},
	}
}

func columnField(columns []string) M {
	field := M{"type": "string"}
	if len(columns) > 0 {
		field["enum"] = columns
	}
	return field
}

func colorField() M {
	return M{"type": "string", "format": "color"}
}

func optionsSchema(columns []string) M {
	column := columnField(columns)
	xColumn := M{
		"type":     "object",
		"required": []string{"key", "type"},
		"properties": M{
			"key":        column,
			"type":       M{"type": "string", "enum": []string{"time", "category"}},
			"timeFormat": M{"type": "string"},
		},
	}
	if len(columns) == 0 {
		xColumn["properties"].(M)["key"] = M{"type": "string", "minLength": 1}
	}

	return M{
		"type":     "object",
		"required": []string{"xColumn", "yColumns"},
		"properties": M{
			"xColumn":  xColumn,
			"yColumns": M{"type": "array", "minItems": 1, "items": column},
			"groupBy":  column,
			"seriesOptions": M{
				"type": "array",
				"items": M{
					"type":     "object",
					"required": []string{"key"},
					"properties": M{
						"key":   M{"type": "string"},
						"title": M{"type": "string"},
						"color": colorField(),
					},
				},
			},
			"smooth":   M{"type": "boolean"},
			"stacking": M{"type": "boolean"},
			"legend": M{
				"type": "object",
				"properties": M{
					"show":      M{"type": "boolean"},
					"fontColor": colorField(),
					"scroll":    M{"type": "boolean"},
					"position":  M{"type": "string", "enum": []string{"top", "bottom", "left", "right"}},
				},
			},
			"showSymbol":         M{"type": "boolean"},
			"showDataLabels":     M{"type": "boolean"},
			"percentage":         M{"type": "boolean"},
			"mergeDuplicateData": M{"type": "boolean"},
			"xAxis": M{
				"type": "object",
				"properties": M{
					"title":         M{"type": "string"},
					"fontColor":     colorField(),
					"tickFormat":    M{"type": "string"},
					"reverseValues": M{"type": "boolean"},
				},
			},
			"yAxis": M{
				"type": "object",
				"properties": M{
					"title":       M{"type": "string"},
					"fontColor":   colorField(),
					"tickFormat":  M{"type": "string"},
					"labelFormat": M{"type": "string"},
					"position":    M{"type": "string", "enum": []string{"left", "right"}},
				},
			},
			"padding": M{
				"type": "object",
				"properties": M{
					"top":    M{"type": "number"},
					"bottom": M{"type": "number"},
					"left":   M{"type": "number"},
					"right":  M{"type": "number"},
				},
			},
		},
	}
}

func dataSchema(columns []string) M {
	return M{
		"type":     "object",
		"required": []string{"options"},
		"properties": M{
			"dataSource": M{"type": "string", "enum": []string{
				datasource.KindInline, datasource.KindCSV, datasource.KindExcel,
				datasource.KindPostgres, datasource.KindTable, datasource.KindPrompt,
			}},
			"query":       M{"type": "string"},
			"table":       M{"type": "string"},
			"columns":     M{"type": "array", "items": M{"type": "string"}},
			"prompt":      M{"type": "string"},
			"file":        M{"type": "string"},
			"sheet":       M{"type": "string"},
			"rows":        M{"type": "array", "items": M{"type": "object"}},
			"title":       M{"type": "string"},
			"description": M{"type": "string"},
			"options":     optionsSchema(columns),
		},
	}
}

func embededDataSchema(columns []string) M {
	return M{
		"type":     "object",
		"required": []string{"options"},
		"properties": M{
			"title":       M{"type": "string"},
			"description": M{"type": "string"},
			"options":     optionsSchema(columns),
		},
	}
}

func control(scope string) M {
	return M{"type": "Control", "scope": scope}
}

func category(label string, elements ...M) M {
	return M{
		"type":     "Category",
		"label":    label,
		"elements": []M{{"type": "VerticalLayout", "elements": elements}},
	}
}

func chartCategories() []M {
	return []M{
		category("Data",
			control("#/properties/options/properties/xColumn"),
			control("#/properties/options/properties/yColumns"),
			control("#/properties/options/properties/groupBy"),
			control("#/properties/options/properties/mergeDuplicateData"),
			control("#/properties/options/properties/percentage"),
		),
		category("Series",
			control("#/properties/options/properties/seriesOptions"),
			control("#/properties/options/properties/smooth"),
			control("#/properties/options/properties/stacking"),
			control("#/properties/options/properties/showSymbol"),
			control("#/properties/options/properties/showDataLabels"),
		),
		category("Axes",
			control("#/properties/options/properties/xAxis"),
			control("#/properties/options/properties/yAxis"),
		),
		category("Layout",
			control("#/properties/options/properties/legend"),
			control("#/properties/options/properties/padding"),
		),
	}
}

func builderUISchema() M {
	general := category("General",
		control("#/properties/title"),
		control("#/properties/description"),
		control("#/properties/dataSource"),
		control("#/properties/query"),
		control("#/properties/table"),
		control("#/properties/columns"),
		control("#/properties/prompt"),
		control("#/properties/file"),
		control("#/properties/sheet"),
	)
	return M{"type": "Categorization", "elements": append([]M{general}, chartCategories()...)}
}

func embededUISchema() M {
	general := category("General",
		control("#/properties/title"),
		control("#/properties/description"),
	)
	return M{"type": "Categorization", "elements": append([]M{general}, chartCategories()...)}
}

var (
	validatorOnce sync.Once
	validator     *jsonschema.Schema
	validatorErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	validatorOnce.Do(func() {
		bytes, err := json.Marshal(dataSchema(nil))
		if err != nil {
			validatorErr = fmt.Errorf("failed to marshal schema: %w", err)
			return
		}
		validator, validatorErr = jsonschema.NewCompiler().Compile(bytes)
		if validatorErr != nil {
			validatorErr = fmt.Errorf("invalid JSON Schema: %w", validatorErr)
		}
	})
	return validator, validatorErr
}

// ValidationError lists every problem found in widget data, keyed by schema
// location.
type ValidationError struct {
	Problems map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Problems))
	for k := range e.Problems {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Problems[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap makes errors.Is(err, ErrInvalidData) hold.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidData
}

// Validate checks data against the configuration schema.
func Validate(data Data) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	var doc M
	if err := json.Unmarshal(bytes, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	result := schema.Validate(doc)
	if result.IsValid() {
		return nil
	}

	problems := map[string]string{}
	for field, e := range result.Errors {
		problems[field] = e.Message
	}
	return &ValidationError{Problems: problems}
}
