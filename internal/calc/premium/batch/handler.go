package batch

import (
	"encoding/json"
	"net/http"

	"Illusion/internal/calc/illusion"
)

type Handler struct{}

func (h *Handler) Scenarios(w http.ResponseWriter, r *http.Request) {
	var input ScenarioBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		illusion.WriteError(w, http.StatusBadRequest, illusion.ErrorBody{Code: illusion.CodeInvalidPayload, Message: "Invalid request payload"})
		return
	}
	res, err := Evaluate(input.Items)
	if err != nil {
		illusion.WriteError(w, http.StatusBadRequest, illusion.ErrorBody{Code: "INVALID_BATCH", Message: err.Error()})
		return
	}
	illusion.WriteJSON(w, http.StatusOK, res)
}
