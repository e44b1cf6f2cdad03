package respuesta

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"clave": "valor"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status esperado 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type esperado application/json, got %s", ct)
	}

	var envelope struct {
		Data  map[string]string `json:"data"`
		Error json.RawMessage   `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data["clave"] != "valor" {
		t.Fatalf("data inesperada: %+v", envelope.Data)
	}
	if string(envelope.Error) != "null" {
		t.Fatalf("error debe ser null en éxito, got %s", envelope.Error)
	}
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusUnprocessableEntity, "VALIDATION", "campos inválidos", map[string]string{"campo": "motivo"})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status esperado 422, got %d", rec.Code)
	}

	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error *ErrorBody      `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(envelope.Data) != "null" {
		t.Fatalf("data debe ser null en error, got %s", envelope.Data)
	}
	if envelope.Error == nil || envelope.Error.Code != "VALIDATION" || envelope.Error.Message != "campos inválidos" {
		t.Fatalf("error inesperado: %+v", envelope.Error)
	}
}

func TestErrorSinDetalles(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, "NOT_FOUND", "reporte inexistente", nil)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw["error"], &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if _, ok := body["details"]; ok {
		t.Fatal("details debe omitirse cuando es nil")
	}
}
