package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Illusion/internal/calc/illusion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	b, err := illusion.Evaluate(illusion.DefaultInput())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Meta{Project: "Demo", Author: "QA", Notes: "Default scenario."}, b))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestRender_ZeroValues(t *testing.T) {
	b, err := illusion.Evaluate(illusion.Input{ShareholderCount: 1, ProductionUnits: 1, SharesPerShareholder: 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, Render(&buf, Meta{}, b))
}

func TestHandler_Generate(t *testing.T) {
	h := &Handler{}

	body, err := json.Marshal(Input{Meta: Meta{Title: "Q3"}, Scenario: illusion.DefaultInput()})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/illusion/report/pdf", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestHandler_GenerateRejectsInvalidScenario(t *testing.T) {
	h := &Handler{}
	in := illusion.DefaultInput()
	in.ProductionUnits = 10

	body, err := json.Marshal(Input{Scenario: in})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/illusion/report/pdf", bytes.NewReader(body)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), illusion.CodeProductionBelowShareholders)
}
