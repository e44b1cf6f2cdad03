package bitacora

import (
	"github.com/go-chi/chi/v5"
)

// Mount agrega las rutas de bitácora al router.
func Mount(r chi.Router, handler *Handler) {
	handler.RegisterRoutes(r)
}
