package reporte

import (
	"github.com/go-chi/chi/v5"
)

// Mount agrega las rutas del ciclo de vida de reportes al router.
func Mount(r chi.Router, handler *Handler) {
	handler.RegisterRoutes(r)
}
