// Package server wires the HTTP routes of the portfolio site.
package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/portfolio"
	"github.com/Zachkp/portfolio/internal/ratelimit"
)

// Deps are the collaborators the router needs. Limiter may be nil.
type Deps struct {
	Logger  *zap.Logger
	Contact *contact.Service
	Store   Pinger
	Content *portfolio.Content
	Metrics *metrics.Metrics
	Limiter ratelimit.Limiter
	Hasher  *IPHasher
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), zapLogger(d.Logger, d.Hasher), countRequests(d.Metrics), gin.Recovery())

	contactH := NewContactHandler(d.Logger, d.Contact, d.Limiter, d.Hasher)
	r.Any("/api/contact", contactH.Submit)

	r.GET("/api/portfolio", portfolioContent(d.Content))
	r.GET("/api/portfolio/:section", portfolioSection(d.Content))

	r.GET("/healthz", health(d.Logger, d.Store))
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	return r
}
