package report

import (
	"bytes"
	"encoding/json"
	"net/http"

	"Illusion/internal/calc/illusion"
	"Illusion/internal/metrics"

	"go.uber.org/zap"
)

type Input struct {
	Meta
	Scenario illusion.Input `json:"input"`
}

type Handler struct {
	Logger *zap.Logger
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		illusion.WriteError(w, http.StatusBadRequest, illusion.ErrorBody{Code: illusion.CodeInvalidPayload, Message: "Invalid request payload"})
		return
	}
	res, err := illusion.Run(input.Scenario)
	if err != nil {
		illusion.WriteFailure(w, err)
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, input.Meta, illusion.Present(res)); err != nil {
		if h.Logger != nil {
			h.Logger.Error("pdf render failed", zap.Error(err))
		}
		illusion.WriteError(w, http.StatusInternalServerError, illusion.ErrorBody{Code: "REPORT_FAILED", Message: "Report generation error"})
		return
	}
	metrics.ReportsRendered.WithLabelValues("pdf").Inc()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"illusion-report.pdf\"")
	w.Write(buf.Bytes())
}
