package illusion

import (
	"fmt"
	"math"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const CodeInvalidInput = "INVALID_INPUT"

const inputSchema = `{
  "type": "object",
  "properties": {
    "shareholder_count":        {"type": "integer", "minimum": 1},
    "production_units":         {"type": "integer", "minimum": 1},
    "selling_price_per_unit":   {"type": "number",  "minimum": 0},
    "shares_per_shareholder":   {"type": "integer", "minimum": 1},
    "production_cost_per_unit": {"type": "number",  "minimum": 0},
    "operating_cost_per_unit":  {"type": "number",  "minimum": 0},
    "corporate_tax_rate":       {"type": "number",  "minimum": 0, "maximum": 1},
    "dividend_tax_rate":        {"type": "number",  "minimum": 0, "maximum": 1}
  },
  "required": [
    "shareholder_count", "production_units", "selling_price_per_unit",
    "shares_per_shareholder", "production_cost_per_unit",
    "operating_cost_per_unit", "corporate_tax_rate", "dividend_tax_rate"
  ]
}`

var schema = mustSchema(inputSchema)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("illusion: bad input schema: %v", err))
	}
	return s
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InputError lists every field outside its allowed range.
type InputError struct {
	Fields []FieldError `json:"fields"`
}

func (e *InputError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return CodeInvalidInput + ": " + strings.Join(parts, "; ")
}

// CheckBounds rejects negative or zero values where the model disallows them
// and tax rates outside [0,1]. Call it before Calculate.
func CheckBounds(in Input) error {
	if ie := nonFinite(in); ie != nil {
		return ie
	}
	res, err := schema.Validate(gojsonschema.NewGoLoader(in))
	if err != nil {
		return fmt.Errorf("validate input: %w", err)
	}
	if res.Valid() {
		return nil
	}
	ie := &InputError{}
	for _, e := range res.Errors() {
		ie.Fields = append(ie.Fields, FieldError{Field: e.Field(), Message: e.Description()})
	}
	return ie
}

// nonFinite reports NaN and infinite amounts, which the JSON loader cannot
// encode.
func nonFinite(in Input) *InputError {
	floats := []struct {
		field string
		v     float64
	}{
		{"selling_price_per_unit", in.SellingPricePerUnit},
		{"production_cost_per_unit", in.ProductionCostPerUnit},
		{"operating_cost_per_unit", in.OperatingCostPerUnit},
		{"corporate_tax_rate", in.CorporateTaxRate},
		{"dividend_tax_rate", in.DividendTaxRate},
	}
	var ie *InputError
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			if ie == nil {
				ie = &InputError{}
			}
			ie.Fields = append(ie.Fields, FieldError{Field: f.field, Message: "must be a finite number"})
		}
	}
	return ie
}
