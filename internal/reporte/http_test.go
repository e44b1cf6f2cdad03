package reporte

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/muniatiende/reportes/internal/auth"
	httpmiddleware "github.com/muniatiende/reportes/internal/http/middleware"
	"github.com/muniatiende/reportes/internal/storage"
)

func nuevoRouter(e *entorno) http.Handler {
	r := chi.NewRouter()
	NewHandler(e.service, storage.NoopUploader{}).RegisterRoutes(r)
	return r
}

func ejecutar(t *testing.T, router http.Handler, actor auth.Identity, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req = req.WithContext(httpmiddleware.WithIdentity(req.Context(), actor))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodificar(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var envelope struct {
		Data  map[string]json.RawMessage `json:"data"`
		Error json.RawMessage            `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return envelope.Data
}

func TestHTTPCrearYObtener(t *testing.T) {
	e := nuevoEntorno(t)
	router := nuevoRouter(e)

	rec := ejecutar(t, router, e.ciudadano, http.MethodPost, "/reportes", map[string]any{
		"tipo":              "bache",
		"descripcion_corta": "Bache en avenida principal",
		"peso":              3,
		"colonia":           "Centro",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status esperado 201, got %d: %s", rec.Code, rec.Body.String())
	}

	data := decodificar(t, rec)
	var creado Reporte
	if err := json.Unmarshal(data["reporte"], &creado); err != nil {
		t.Fatalf("decode reporte: %v", err)
	}
	if creado.Dependencia != "obras_publicas" || creado.Estado != EstadoAbierto {
		t.Fatalf("reporte mal derivado: %+v", creado)
	}

	rec = ejecutar(t, router, e.ciudadano, http.MethodGet, "/reportes/"+creado.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status esperado 200, got %d", rec.Code)
	}
}

func TestHTTPCrearValidaCuerpo(t *testing.T) {
	e := nuevoEntorno(t)
	router := nuevoRouter(e)

	// peso fuera de rango lo detiene el validador antes del servicio
	rec := ejecutar(t, router, e.ciudadano, http.MethodPost, "/reportes", map[string]any{
		"tipo":              "bache",
		"descripcion_corta": "Bache",
		"peso":              9,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status esperado 422, got %d", rec.Code)
	}
}

func TestHTTPObtenerInexistente(t *testing.T) {
	e := nuevoEntorno(t)
	router := nuevoRouter(e)

	rec := ejecutar(t, router, e.ciudadano, http.MethodGet, "/reportes/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status esperado 404, got %d", rec.Code)
	}

	rec = ejecutar(t, router, e.ciudadano, http.MethodGet, "/reportes/no-es-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status esperado 400, got %d", rec.Code)
	}
}

func TestHTTPFlujoDeCierre(t *testing.T) {
	e := nuevoEntorno(t)
	router := nuevoRouter(e)
	r := e.sembrarReporte(t)

	rec := ejecutar(t, router, e.supervisor, http.MethodPost, "/reportes/"+r.ID.String()+"/asignaciones", map[string]any{
		"usuario_id": e.funcionario.ID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("asignar: status esperado 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = ejecutar(t, router, e.funcionario, http.MethodPost, "/reportes/"+r.ID.String()+"/cierre", map[string]any{
		"notas":     "bache reparado",
		"firma_ref": "firmas/ref1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("cierre: status esperado 201, got %d: %s", rec.Code, rec.Body.String())
	}

	data := decodificar(t, rec)
	var solicitud SolicitudCierre
	if err := json.Unmarshal(data["solicitud"], &solicitud); err != nil {
		t.Fatalf("decode solicitud: %v", err)
	}

	// solicitud duplicada → 409
	rec = ejecutar(t, router, e.funcionario, http.MethodPost, "/reportes/"+r.ID.String()+"/cierre", map[string]any{
		"notas":     "otra vez",
		"firma_ref": "firmas/ref1",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("cierre duplicado: status esperado 409, got %d", rec.Code)
	}

	// rechazo sin notas → 422
	rec = ejecutar(t, router, e.supervisor, http.MethodPost, "/cierres/"+solicitud.ID.String()+"/rechazar", map[string]any{})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("rechazo sin notas: status esperado 422, got %d", rec.Code)
	}

	// aprobación de supervisor ajeno → 403
	rec = ejecutar(t, router, e.supervisor2, http.MethodPost, "/cierres/"+solicitud.ID.String()+"/aprobar", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("supervisor ajeno: status esperado 403, got %d", rec.Code)
	}

	rec = ejecutar(t, router, e.supervisor, http.MethodPost, "/cierres/"+solicitud.ID.String()+"/aprobar", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("aprobar: status esperado 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// cerrado: nueva asignación → 409 INVALID_STATE
	rec = ejecutar(t, router, e.supervisor, http.MethodPost, "/reportes/"+r.ID.String()+"/asignaciones", map[string]any{
		"usuario_id": e.funcionario2.ID,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("asignar cerrado: status esperado 409, got %d", rec.Code)
	}

	// reabrir con rol insuficiente → 403; admin → 200
	rec = ejecutar(t, router, e.supervisor, http.MethodPost, "/reportes/"+r.ID.String()+"/reabrir", map[string]any{
		"motivo": "se reporta de nuevo el mismo bache",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("reabrir supervisor: status esperado 403, got %d", rec.Code)
	}
	rec = ejecutar(t, router, e.admin, http.MethodPost, "/reportes/"+r.ID.String()+"/reabrir", map[string]any{
		"motivo": "se reporta de nuevo el mismo bache",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("reabrir admin: status esperado 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// historial completo de la vida del reporte
	rec = ejecutar(t, router, e.supervisor, http.MethodGet, "/reportes/"+r.ID.String()+"/historial", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("historial: status esperado 200, got %d", rec.Code)
	}
	var entradas []json.RawMessage
	if err := json.Unmarshal(decodificar(t, rec)["historial"], &entradas); err != nil {
		t.Fatalf("decode historial: %v", err)
	}
	if len(entradas) != 4 {
		t.Fatalf("esperaba 4 entradas (asignación, solicitud, aprobación, reapertura), got %d", len(entradas))
	}
}

func TestHTTPReasignar(t *testing.T) {
	e := nuevoEntorno(t)
	router := nuevoRouter(e)
	r := e.sembrarReporte(t)

	// motivo corto lo corta el validador con 422
	rec := ejecutar(t, router, e.supervisor, http.MethodPost, "/reportes/"+r.ID.String()+"/reasignar", map[string]any{
		"usuario_id": e.funcionario2.ID,
		"motivo":     "corto",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("motivo corto: status esperado 422, got %d", rec.Code)
	}

	rec = ejecutar(t, router, e.supervisor, http.MethodPost, "/reportes/"+r.ID.String()+"/reasignar", map[string]any{
		"usuario_id": e.funcionario2.ID,
		"motivo":     "corresponde a servicios públicos",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("reasignar: status esperado 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var reporte Reporte
	if err := json.Unmarshal(decodificar(t, rec)["reporte"], &reporte); err != nil {
		t.Fatalf("decode reporte: %v", err)
	}
	if reporte.Dependencia != "servicios_publicos" || reporte.Tipo != "fuga_agua" {
		t.Fatalf("ruteo no aplicado: %+v", reporte)
	}
}

func TestHTTPSinIdentidad(t *testing.T) {
	e := nuevoEntorno(t)
	router := nuevoRouter(e)

	req := httptest.NewRequest(http.MethodPost, "/reportes", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status esperado 401, got %d", rec.Code)
	}
}

func TestHTTPResumen(t *testing.T) {
	e := nuevoEntorno(t)
	router := nuevoRouter(e)
	e.sembrarReporte(t)
	e.sembrarReporte(t)

	rec := ejecutar(t, router, e.supervisor, http.MethodGet, "/reportes/resumen", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status esperado 200, got %d", rec.Code)
	}

	var resumen Resumen
	if err := json.Unmarshal(decodificar(t, rec)["resumen"], &resumen); err != nil {
		t.Fatalf("decode resumen: %v", err)
	}
	if resumen.PorEstado[EstadoAbierto] != 2 {
		t.Fatalf("esperaba 2 abiertos, got %d", resumen.PorEstado[EstadoAbierto])
	}
}
