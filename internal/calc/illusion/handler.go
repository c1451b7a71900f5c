package illusion

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"Illusion/internal/auth"
	"Illusion/internal/metrics"

	"go.uber.org/zap"
)

const CodeInvalidPayload = "INVALID_PAYLOAD"

type Handler struct {
	Logger *zap.Logger
}

type Response struct {
	Input        Input  `json:"input"`
	Result       Result `json:"result"`
	Presentation Bundle `json:"presentation"`
}

type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func (h *Handler) Defaults(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, DefaultInput())
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, ErrorBody{Code: CodeInvalidPayload, Message: "Invalid request payload"})
		return
	}
	log := h.log()
	if sub, ok := auth.Subject(r.Context()); ok {
		log = log.With(zap.String("subject", sub))
	}
	res, err := Run(input)
	if err != nil {
		log.Info("calculation rejected", zap.Error(err))
		WriteFailure(w, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, Response{Input: input, Result: res, Presentation: Present(res)}); err != nil {
		log.Debug("write response", zap.Error(err))
	}
}

// Run is the shared entry point of every transport: bounds, then Calculate,
// with the outcome counted.
func Run(in Input) (Result, error) {
	start := time.Now()
	if err := CheckBounds(in); err != nil {
		metrics.Computations.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		return Result{}, err
	}
	res, err := Calculate(in)
	metrics.ComputeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.Computations.WithLabelValues(metrics.OutcomeRejected).Inc()
		return Result{}, err
	}
	metrics.Computations.WithLabelValues(metrics.OutcomeOK).Inc()
	return res, nil
}

func (h *Handler) log() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

// Failure maps an error from Run to a status code and body.
func Failure(err error) (int, ErrorBody) {
	var ie *InputError
	if errors.As(err, &ie) {
		return http.StatusBadRequest, ErrorBody{Code: CodeInvalidInput, Message: "Input out of range", Fields: ie.Fields}
	}
	if ve, ok := IsValidation(err); ok {
		return http.StatusUnprocessableEntity, ErrorBody{Code: ve.Code, Message: ve.Message}
	}
	return http.StatusInternalServerError, ErrorBody{Code: "INTERNAL", Message: "Calculation error"}
}

func WriteFailure(w http.ResponseWriter, err error) {
	status, body := Failure(err)
	WriteError(w, status, body)
}

func WriteError(w http.ResponseWriter, status int, body ErrorBody) {
	WriteJSON(w, status, body)
}

// WriteJSON returns the encode error; the status is already sent by then.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
