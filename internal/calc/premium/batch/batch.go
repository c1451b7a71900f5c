package batch

import (
	"fmt"

	"Illusion/internal/calc/illusion"
)

const MaxItems = 1000

type ScenarioBatchInput struct {
	Items []illusion.Input `json:"items"`
}

// Outcome holds either the presentation of one scenario or why it failed.
type Outcome struct {
	Index        int                 `json:"index"`
	Input        illusion.Input      `json:"input"`
	Presentation *illusion.Bundle    `json:"presentation,omitempty"`
	Error        *illusion.ErrorBody `json:"error,omitempty"`
}

type ScenarioBatchResult struct {
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Results   []Outcome `json:"results"`
}

// Evaluate runs every scenario in order. A failing scenario is reported in
// its Outcome and does not stop the rest.
func Evaluate(items []illusion.Input) (ScenarioBatchResult, error) {
	if len(items) == 0 {
		return ScenarioBatchResult{}, fmt.Errorf("no items")
	}
	if len(items) > MaxItems {
		return ScenarioBatchResult{}, fmt.Errorf("too many items: %d > %d", len(items), MaxItems)
	}
	out := ScenarioBatchResult{Results: make([]Outcome, 0, len(items))}
	for i, item := range items {
		out.Results = append(out.Results, One(i, item))
	}
	for _, o := range out.Results {
		if o.Error != nil {
			out.Failed++
		} else {
			out.Succeeded++
		}
	}
	return out, nil
}

func One(index int, in illusion.Input) Outcome {
	o := Outcome{Index: index, Input: in}
	res, err := illusion.Run(in)
	if err != nil {
		_, body := illusion.Failure(err)
		o.Error = &body
		return o
	}
	b := illusion.Present(res)
	o.Presentation = &b
	return o
}
