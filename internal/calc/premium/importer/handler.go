package importer

import (
	"bytes"
	"encoding/json"
	"net/http"

	"Illusion/internal/calc/illusion"
	"Illusion/internal/calc/premium/batch"
	"Illusion/internal/metrics"

	"go.uber.org/zap"
)

const MaxUploadSize = 10 << 20 // 10MB

const CodeInvalidRow = "INVALID_ROW"

type Handler struct {
	Logger *zap.Logger
}

type ImportedOutcome struct {
	Row int `json:"row"`
	batch.Outcome
}

type ScenarioImportResult struct {
	Count   int               `json:"count"`
	Results []ImportedOutcome `json:"results"`
}

func (h *Handler) Scenarios(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		illusion.WriteError(w, http.StatusBadRequest, illusion.ErrorBody{Code: illusion.CodeInvalidPayload, Message: "File required"})
		return
	}
	defer file.Close()

	scenarios, err := ParseScenarios(file)
	if err != nil {
		illusion.WriteError(w, http.StatusBadRequest, illusion.ErrorBody{Code: illusion.CodeInvalidPayload, Message: err.Error()})
		return
	}
	if len(scenarios) > batch.MaxItems {
		illusion.WriteError(w, http.StatusBadRequest, illusion.ErrorBody{Code: "INVALID_BATCH", Message: "too many rows"})
		return
	}
	illusion.WriteJSON(w, http.StatusOK, Evaluate(scenarios))
}

// Evaluate computes every parsed scenario; rows that failed to parse are
// reported without being computed.
func Evaluate(scenarios []Scenario) ScenarioImportResult {
	out := ScenarioImportResult{Results: make([]ImportedOutcome, 0, len(scenarios))}
	for i, s := range scenarios {
		if s.Err != nil {
			out.Results = append(out.Results, ImportedOutcome{
				Row: s.Row,
				Outcome: batch.Outcome{
					Index: i,
					Error: &illusion.ErrorBody{Code: CodeInvalidRow, Message: s.Err.Error()},
				},
			})
			continue
		}
		out.Results = append(out.Results, ImportedOutcome{Row: s.Row, Outcome: batch.One(i, s.Input)})
	}
	out.Count = len(out.Results)
	return out
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var input illusion.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		illusion.WriteError(w, http.StatusBadRequest, illusion.ErrorBody{Code: illusion.CodeInvalidPayload, Message: "Invalid request payload"})
		return
	}
	res, err := illusion.Run(input)
	if err != nil {
		illusion.WriteFailure(w, err)
		return
	}
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, illusion.Present(res)); err != nil {
		if h.Logger != nil {
			h.Logger.Error("xlsx export failed", zap.Error(err))
		}
		illusion.WriteError(w, http.StatusInternalServerError, illusion.ErrorBody{Code: "EXPORT_FAILED", Message: "Export error"})
		return
	}
	metrics.ReportsRendered.WithLabelValues("xlsx").Inc()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"illusion.xlsx\"")
	w.Write(buf.Bytes())
}
