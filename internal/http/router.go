package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/muniatiende/reportes/internal/auditoria"
	"github.com/muniatiende/reportes/internal/auth"
	"github.com/muniatiende/reportes/internal/bitacora"
	"github.com/muniatiende/reportes/internal/catalogo"
	"github.com/muniatiende/reportes/internal/config"
	httpmiddleware "github.com/muniatiende/reportes/internal/http/middleware"
	"github.com/muniatiende/reportes/internal/http/respuesta"
	"github.com/muniatiende/reportes/internal/reporte"
	"github.com/muniatiende/reportes/internal/storage"
	"github.com/muniatiende/reportes/internal/usuario"
)

// NewRouter arma el router con middleware y módulos montados.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client, cat *catalogo.Catalogo) (http.Handler, error) {
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, 15*time.Minute)

	var uploader storage.Uploader = storage.NoopUploader{}
	if cfg.Storage.Bucket != "" {
		s3, err := storage.NewS3Uploader(storage.S3Config{
			Endpoint:     cfg.Storage.Endpoint,
			Region:       cfg.Storage.Region,
			Bucket:       cfg.Storage.Bucket,
			AccessKey:    cfg.Storage.AccessKey,
			SecretKey:    cfg.Storage.SecretKey,
			PublicDomain: cfg.Storage.PublicDomain,
		})
		if err != nil {
			return nil, err
		}
		uploader = s3
	}

	auditoriaRepo := auditoria.NewRepository(pool)
	reporteRepo := reporte.NewRepository(pool, auditoriaRepo)
	usuarioRepo := usuario.NewRepository(pool)
	reporteService := reporte.NewService(reporteRepo, usuarioRepo, cat, redisClient, cfg.CacheTTL)
	reporteHandler := reporte.NewHandler(reporteService, uploader)

	bitacoraRepo := bitacora.NewRepository(pool)
	bitacoraService := bitacora.NewService(bitacoraRepo, reporteRepo)
	bitacoraHandler := bitacora.NewHandler(bitacoraService)

	publicLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst)
	actorLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))
	r.Use(httpmiddleware.Logging)

	r.Group(func(r chi.Router) {
		r.Use(httpmiddleware.IPRateLimit(publicLimiter))
		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			respuesta.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(httpmiddleware.Auth(jwtManager))
		r.Use(httpmiddleware.ActorRateLimit(actorLimiter))

		reporte.Mount(r, reporteHandler)
		bitacora.Mount(r, bitacoraHandler)
	})

	return r, nil
}
