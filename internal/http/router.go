package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/landvote/balance-register/internal/httpui"
)

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(), loopbackOnly(), withCORS(s.cors))

	r.GET("/", s.handleIndex)
	r.GET("/static/*filepath", gin.WrapH(httpui.StaticHandler("/static")))
	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/balances", s.handleBalances)
		api.POST("/balances/refresh", s.handleRefresh)
		api.POST("/balances/:class/toggle", s.handleToggle)
		api.GET("/tokens", s.handleTokens)
	}

	return r
}
