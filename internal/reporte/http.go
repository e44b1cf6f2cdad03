package reporte

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/muniatiende/reportes/internal/errores"
	httpmiddleware "github.com/muniatiende/reportes/internal/http/middleware"
	"github.com/muniatiende/reportes/internal/http/respuesta"
	"github.com/muniatiende/reportes/internal/storage"
)

const maxArchivoBytes = 10 << 20

// Handler orquesta las rutas del ciclo de vida de reportes.
type Handler struct {
	service  *Service
	uploader storage.Uploader
	validate *validator.Validate
}

func NewHandler(service *Service, uploader storage.Uploader) *Handler {
	return &Handler{service: service, uploader: uploader, validate: validator.New()}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reportes", func(r chi.Router) {
		r.Post("/", h.handleCrear)
		r.Get("/", h.handleListar)
		r.Get("/resumen", h.handleResumen)
		r.Get("/{id}", h.handleObtener)
		r.Get("/{id}/historial", h.handleHistorial)
		r.Get("/{id}/asignaciones", h.handleListarAsignaciones)
		r.Post("/{id}/asignaciones", h.handleAsignar)
		r.Delete("/{id}/asignaciones/{usuarioID}", h.handleDesasignar)
		r.Post("/{id}/reasignar", h.handleReasignar)
		r.Post("/{id}/cierre", h.handleSolicitarCierre)
		r.Post("/{id}/reabrir", h.handleReabrir)
		r.Post("/{id}/evidencias", h.handleSubirEvidencia)
		r.Post("/{id}/firmas", h.handleSubirFirma)
	})

	r.Route("/cierres", func(r chi.Router) {
		r.Get("/{id}", h.handleObtenerSolicitud)
		r.Post("/{id}/aprobar", h.handleAprobarCierre)
		r.Post("/{id}/rechazar", h.handleRechazarCierre)
	})
}

type crearRequest struct {
	Tipo             string  `json:"tipo" validate:"required"`
	DescripcionCorta string  `json:"descripcion_corta" validate:"required"`
	DescripcionLarga string  `json:"descripcion_larga"`
	Latitud          float64 `json:"latitud" validate:"gte=-90,lte=90"`
	Longitud         float64 `json:"longitud" validate:"gte=-180,lte=180"`
	Peso             int     `json:"peso" validate:"required,gte=1,lte=5"`
	Colonia          string  `json:"colonia"`
	CodigoPostal     string  `json:"codigo_postal"`
	Municipio        string  `json:"municipio"`
	Entidad          string  `json:"entidad"`
	Pais             string  `json:"pais"`
}

func (h *Handler) handleCrear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	actor, ok := httpmiddleware.GetIdentity(ctx)
	if !ok {
		respuesta.Error(w, http.StatusUnauthorized, "AUTH", "identificación inválida", nil)
		return
	}

	var req crearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "cuerpo inválido", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respuesta.Error(w, http.StatusUnprocessableEntity, "VALIDATION", "campos inválidos", err.Error())
		return
	}

	reporte, err := h.service.Crear(ctx, actor, CrearInput{
		Tipo:             req.Tipo,
		DescripcionCorta: req.DescripcionCorta,
		DescripcionLarga: req.DescripcionLarga,
		Latitud:          req.Latitud,
		Longitud:         req.Longitud,
		Peso:             req.Peso,
		Ubicacion: Ubicacion{
			Colonia:      req.Colonia,
			CodigoPostal: req.CodigoPostal,
			Municipio:    req.Municipio,
			Entidad:      req.Entidad,
			Pais:         req.Pais,
		},
		CreadoPor: actor.ID,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	logRequest(ctx, "POST /reportes", actor.ID, start)
	respuesta.JSON(w, http.StatusCreated, map[string]any{"reporte": reporte})
}

func (h *Handler) handleListar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filtro := Filtro{
		Dependencia: r.URL.Query().Get("dependencia"),
	}
	if estados := r.URL.Query().Get("estado"); estados != "" {
		filtro.Estado = strings.Split(estados, ",")
	}
	if asignado := r.URL.Query().Get("asignado_a"); asignado != "" {
		id, err := uuid.Parse(asignado)
		if err != nil {
			respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "asignado_a inválido", nil)
			return
		}
		filtro.AsignadoA = &id
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			filtro.Limit = n
		}
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil {
			filtro.Offset = n
		}
	}

	reportes, err := h.service.Listar(ctx, filtro)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respuesta.JSON(w, http.StatusOK, map[string]any{"reportes": reportes})
}

func (h *Handler) handleResumen(w http.ResponseWriter, r *http.Request) {
	resumen, err := h.service.Resumen(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respuesta.JSON(w, http.StatusOK, map[string]any{"resumen": resumen})
}

func (h *Handler) handleObtener(w http.ResponseWriter, r *http.Request) {
	id, err := paramUUID(r, "id")
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	reporte, err := h.service.Obtener(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respuesta.JSON(w, http.StatusOK, map[string]any{"reporte": reporte})
}

func (h *Handler) handleHistorial(w http.ResponseWriter, r *http.Request) {
	id, err := paramUUID(r, "id")
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	entradas, err := h.service.Historial(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respuesta.JSON(w, http.StatusOK, map[string]any{"historial": entradas})
}

func (h *Handler) handleListarAsignaciones(w http.ResponseWriter, r *http.Request) {
	id, err := paramUUID(r, "id")
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	asignaciones, err := h.service.Asignaciones(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respuesta.JSON(w, http.StatusOK, map[string]any{"asignaciones": asignaciones})
}

type asignarRequest struct {
	UsuarioID uuid.UUID `json:"usuario_id" validate:"required"`
	Nota      string    `json:"nota"`
}

func (h *Handler) handleAsignar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	actor, ok := httpmiddleware.GetIdentity(ctx)
	if !ok {
		respuesta.Error(w, http.StatusUnauthorized, "AUTH", "identificación inválida", nil)
		return
	}

	id, err := paramUUID(r, "id")
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req asignarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "cuerpo inválido", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respuesta.Error(w, http.StatusUnprocessableEntity, "VALIDATION", "campos inválidos", err.Error())
		return
	}

	reporte, err := h.service.Asignar(ctx, actor, id, req.UsuarioID, req.Nota)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	logRequest(ctx, "POST /reportes/{id}/asignaciones", actor.ID, start)
	respuesta.JSON(w, http.StatusOK, map[string]any{"reporte": reporte})
}

func (h *Handler) handleDesasignar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	actor, ok := httpmiddleware.GetIdentity(ctx)
	if !ok {
		respuesta.Error(w, http.StatusUnauthorized, "AUTH", "identificación inválida", nil)
		return
	}

	id, err := paramUUID(r, "id")
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}
	usuarioID, err := paramUUID(r, "usuarioID")
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "usuario inválido", nil)
		return
	}

	reporte, err := h.service.Desasignar(ctx, actor, id, usuarioID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	logRequest(ctx, "DELETE /reportes/{id}/asignaciones/{usuarioID}", actor.ID, start)
	respuesta.JSON(w, http.StatusOK, map[string]any{"reporte": reporte})
}

type reasignarRequest struct {
	UsuarioID    uuid.UUID `json:"usuario_id" validate:"required"`
	Motivo       string    `json:"motivo" validate:"required,min=10"`
	NuevoTipo    string    `json:"nuevo_tipo"`
	MantenerTipo bool      `json:"mantener_tipo"`
}

func (h *Handler) handleReasignar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	actor, ok := httpmiddleware.GetIdentity(ctx)
	if !ok {
		respuesta.Error(w, http.StatusUnauthorized, "AUTH", "identificación inválida", nil)
		return
	}

	id, err := paramUUID(r, "id")
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req reasignarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "cuerpo inválido", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respuesta.Error(w, http.StatusUnprocessableEntity, "VALIDATION", "campos inválidos", err.Error())
		return
	}

	reporte, err := h.service.Reasignar(ctx, actor, id, ReasignarInput{
		NuevoUsuarioID: req.UsuarioID,
		Motivo:         req.Motivo,
		NuevoTipo:      req.NuevoTipo,
		MantenerTipo:   req.MantenerTipo,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	logRequest(ctx, "POST /reportes/{id}/reasignar", actor.ID, start)
	respuesta.JSON(w, http.StatusOK, map[string]any{"reporte": reporte})
}

type cierreRequest struct {
	Notas      string   `json:"notas" validate:"required"`
	FirmaRef   string   `json:"firma_ref" validate:"required"`
	Evidencias []string `json:"evidencias"`
}

func (h *Handler) handleSolicitarCierre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	actor, ok := httpmiddleware.GetIdentity(ctx)
	if !ok {
		respuesta.Error(w, http.StatusUnauthorized, "AUTH", "identificación inválida", nil)
		return
	}

	id, err := paramUUID(r, "id")
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req cierreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "cuerpo inválido", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respuesta.Error(w, http.StatusUnprocessableEntity, "VALIDATION", "campos inválidos", err.Error())
		return
	}

	solicitud, err := h.service.SolicitarCierre(ctx, actor, id, CierreInput{
		Notas:      req.Notas,
		FirmaRef:   req.FirmaRef,
		Evidencias: req.Evidencias,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	logRequest(ctx, "POST /reportes/{id}/cierre", actor.ID, start)
	respuesta.JSON(w, http.StatusCreated, map[string]any{"solicitud": solicitud})
}

func (h *Handler) handleObtenerSolicitud(w http.ResponseWriter, r *http.Request) {
	id, err := paramUUID(r, "id")
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	solicitud, err := h.service.ObtenerSolicitud(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respuesta.JSON(w, http.StatusOK, map[string]any{"solicitud": solicitud})
}

type resolverCierreRequest struct {
	Notas string `json:"notas"`
}

func (h *Handler) handleAprobarCierre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	actor, ok := httpmiddleware.GetIdentity(ctx)
	if !ok {
		respuesta.Error(w, http.StatusUnauthorized, "AUTH", "identificación inválida", nil)
		return
	}

	id, err := paramUUID(r, "id")
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req resolverCierreRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "cuerpo inválido", nil)
			return
		}
	}

	reporte, err := h.service.AprobarCierre(ctx, actor, id, req.Notas)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	logRequest(ctx, "POST /cierres/{id}/aprobar", actor.ID, start)
	respuesta.JSON(w, http.StatusOK, map[string]any{"reporte": reporte})
}

func (h *Handler) handleRechazarCierre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	actor, ok := httpmiddleware.GetIdentity(ctx)
	if !ok {
		respuesta.Error(w, http.StatusUnauthorized, "AUTH", "identificación inválida", nil)
		return
	}

	id, err := paramUUID(r, "id")
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req resolverCierreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "cuerpo inválido", nil)
		return
	}

	reporte, err := h.service.RechazarCierre(ctx, actor, id, req.Notas)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	logRequest(ctx, "POST /cierres/{id}/rechazar", actor.ID, start)
	respuesta.JSON(w, http.StatusOK, map[string]any{"reporte": reporte})
}

type reabrirRequest struct {
	Motivo string `json:"motivo" validate:"required,min=10"`
}

func (h *Handler) handleReabrir(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	actor, ok := httpmiddleware.GetIdentity(ctx)
	if !ok {
		respuesta.Error(w, http.StatusUnauthorized, "AUTH", "identificación inválida", nil)
		return
	}

	id, err := paramUUID(r, "id")
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req reabrirRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "cuerpo inválido", nil)
		return
	}

	reporte, err := h.service.Reabrir(ctx, actor, id, req.Motivo)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	logRequest(ctx, "POST /reportes/{id}/reabrir", actor.ID, start)
	respuesta.JSON(w, http.StatusOK, map[string]any{"reporte": reporte})
}

func (h *Handler) handleSubirEvidencia(w http.ResponseWriter, r *http.Request) {
	h.subirArchivo(w, r, "evidencias")
}

func (h *Handler) handleSubirFirma(w http.ResponseWriter, r *http.Request) {
	h.subirArchivo(w, r, "firmas")
}

// subirArchivo guarda un blob en el backend S3 y devuelve la referencia
// opaca que luego cita la solicitud de cierre.
func (h *Handler) subirArchivo(w http.ResponseWriter, r *http.Request, prefijo string) {
	ctx := r.Context()
	actor, ok := httpmiddleware.GetIdentity(ctx)
	if !ok {
		respuesta.Error(w, http.StatusUnauthorized, "AUTH", "identificación inválida", nil)
		return
	}
	if !actor.EsPersonal() {
		respuesta.Error(w, http.StatusForbidden, "FORBIDDEN", "sin acceso", nil)
		return
	}

	id, err := paramUUID(r, "id")
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	if err := r.ParseMultipartForm(maxArchivoBytes); err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "multipart inválido", nil)
		return
	}
	file, header, err := r.FormFile("archivo")
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "archivo obligatorio", nil)
		return
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, maxArchivoBytes))
	if err != nil {
		writeInternalError(w, err)
		return
	}

	result, err := h.uploader.Upload(ctx, storage.UploadInput{
		Key:         prefijo + "/" + id.String() + "/" + uuid.NewString(),
		Body:        body,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		writeInternalError(w, err)
		return
	}

	respuesta.JSON(w, http.StatusCreated, map[string]any{"ref": result.URL})
}

func paramUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

func handleDomainError(w http.ResponseWriter, err error) {
	de, ok := errores.De(err)
	if !ok {
		writeInternalError(w, err)
		return
	}

	var details any
	if de.Campo != "" {
		details = map[string]string{"campo": de.Campo}
	}

	switch de.Kind {
	case errores.KindNoEncontrado:
		respuesta.Error(w, http.StatusNotFound, "NOT_FOUND", de.Mensaje, details)
	case errores.KindEstadoInvalido:
		respuesta.Error(w, http.StatusConflict, "INVALID_STATE", de.Mensaje, details)
	case errores.KindNoAutorizado:
		respuesta.Error(w, http.StatusForbidden, "FORBIDDEN", de.Mensaje, details)
	case errores.KindValidacionFallida:
		respuesta.Error(w, http.StatusUnprocessableEntity, "VALIDATION", de.Mensaje, details)
	case errores.KindConflicto:
		respuesta.Error(w, http.StatusConflict, "CONFLICT", de.Mensaje, details)
	default:
		writeInternalError(w, err)
	}
}

func writeInternalError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("reporte handler error")
	respuesta.Error(w, http.StatusInternalServerError, "INTERNAL", "error interno", nil)
}

func logRequest(ctx context.Context, label string, userID uuid.UUID, start time.Time) {
	logger := log.Ctx(ctx)
	if logger == nil {
		logger = &log.Logger
	}
	reqID := chimiddleware.GetReqID(ctx)
	logger.Info().Str("request_id", reqID).Str("user_id", userID.String()).Str("label", label).Dur("duration", time.Since(start)).Msg("reporte_request")
}
