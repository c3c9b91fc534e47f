// Package api wires the HTTP surface: public catalog reads, authenticated
// vote submission, the write-in viewer, and the admin back office.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/moviepulse/awards-voting-api/config"
	"github.com/moviepulse/awards-voting-api/internal/catalog"
	"github.com/moviepulse/awards-voting-api/internal/metrics"
	"github.com/moviepulse/awards-voting-api/internal/middleware"
	"github.com/moviepulse/awards-voting-api/internal/store"
	"github.com/moviepulse/awards-voting-api/internal/voting"
)

type API struct {
	cfg     config.Config
	store   *store.Store
	catalog *catalog.Reader
	voting  *voting.Service
	log     zerolog.Logger
}

func New(cfg config.Config, st *store.Store, reader *catalog.Reader, votes *voting.Service, log zerolog.Logger) *API {
	return &API{cfg: cfg, store: st, catalog: reader, voting: votes, log: log}
}

func (a *API) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", a.Health)
	r.GET("/metrics", metrics.Handler())
	r.POST("/register", a.Register)
	r.POST("/login", a.Login)

	api := r.Group("/api")
	api.GET("/catalog", a.Catalog)
	api.GET("/categories", a.Categories)
	api.GET("/categories/:id", a.Category)
	api.GET("/categories/:id/nominees/:nominee_id/writeins", a.WriteIns)

	authed := api.Group("", middleware.JWTAuthMiddleware(a.cfg.JWTSecret))
	{
		authed.POST("/categories/:id/vote", a.SubmitVote)
		authed.GET("/categories/:id/vote", a.MyVote)
	}

	admin := authed.Group("/admin", middleware.RequireAdmin())
	{
		admin.POST("/categories", a.CreateCategory)
		admin.PUT("/categories/:id", a.UpdateCategory)
		admin.POST("/categories/:id/nominees", a.AddNominee)
		admin.DELETE("/nominees/:id", a.DeleteNominee)
		admin.POST("/celebrities", a.CreateCelebrity)
		admin.POST("/movies", a.CreateMovie)
	}
}

func (a *API) Health(c *gin.Context) {
	if err := a.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "store unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
