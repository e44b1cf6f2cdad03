package bitacora

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/muniatiende/reportes/internal/errores"
	httpmiddleware "github.com/muniatiende/reportes/internal/http/middleware"
	"github.com/muniatiende/reportes/internal/http/respuesta"
)

// Handler orquesta las rutas de la bitácora de trabajo.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reportes/{id}/bitacora", func(r chi.Router) {
		r.Get("/", h.handleListar)
		r.Post("/", h.handleAgregar)
	})
}

type notaRequest struct {
	Categoria string `json:"categoria"`
	Contenido string `json:"contenido"`
}

func (h *Handler) handleAgregar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := httpmiddleware.GetIdentity(ctx)
	if !ok {
		respuesta.Error(w, http.StatusUnauthorized, "AUTH", "identificación inválida", nil)
		return
	}

	reporteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req notaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "cuerpo inválido", nil)
		return
	}

	nota, err := h.service.AgregarNota(ctx, actor, reporteID, req.Categoria, req.Contenido)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respuesta.JSON(w, http.StatusCreated, map[string]any{"nota": nota})
}

func (h *Handler) handleListar(w http.ResponseWriter, r *http.Request) {
	reporteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respuesta.Error(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	notas, err := h.service.ListarNotas(r.Context(), reporteID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respuesta.JSON(w, http.StatusOK, map[string]any{"notas": notas})
}

func handleDomainError(w http.ResponseWriter, err error) {
	de, ok := errores.De(err)
	if !ok {
		log.Error().Err(err).Msg("bitacora handler error")
		respuesta.Error(w, http.StatusInternalServerError, "INTERNAL", "error interno", nil)
		return
	}

	switch de.Kind {
	case errores.KindNoEncontrado:
		respuesta.Error(w, http.StatusNotFound, "NOT_FOUND", de.Mensaje, nil)
	case errores.KindEstadoInvalido:
		respuesta.Error(w, http.StatusConflict, "INVALID_STATE", de.Mensaje, nil)
	case errores.KindNoAutorizado:
		respuesta.Error(w, http.StatusForbidden, "FORBIDDEN", de.Mensaje, nil)
	case errores.KindValidacionFallida:
		respuesta.Error(w, http.StatusUnprocessableEntity, "VALIDATION", de.Mensaje, nil)
	default:
		respuesta.Error(w, http.StatusConflict, "CONFLICT", de.Mensaje, nil)
	}
}
