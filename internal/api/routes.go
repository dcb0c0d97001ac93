package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/entities/filter", s.filterHandler)
		api.GET("/entities/:id", s.entityHandler)
		api.GET("/patches", s.patchesHandler)
		api.POST("/team/encode", s.encodeHandler)
		api.GET("/team/decode", s.decodeHandler)
		api.GET("/team/export", s.exportHandler)
		api.GET("/team/qr", s.qrHandler)
		api.GET("/team/image", s.teamImageHandler)
		api.POST("/revalidate", s.revalidateHandler)
	}
}
