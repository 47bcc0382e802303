package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/meadery/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(calc *handlers.CalcHandler, favs *handlers.FavoritesHandler, batches *handlers.BatchesHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.POST("/calc/target", calc.SolveTarget)
	r.POST("/calc/ingredients", calc.SolveIngredients)
	r.GET("/fruits", calc.ListFruits)

	r.GET("/favorites", favs.List)
	r.POST("/favorites", favs.Save)
	r.DELETE("/favorites/:id", favs.Delete)

	r.GET("/batches", batches.List)
	r.POST("/batches", batches.Start)
	r.GET("/batches/:id", batches.Get)
	r.DELETE("/batches/:id", batches.Delete)
	r.PATCH("/batches/:id/status", batches.SetStatus)
	r.POST("/batches/:id/logs", batches.AddLog)
	r.PUT("/batches/:id/logs/:entryID", batches.EditLog)
	r.DELETE("/batches/:id/logs/:entryID", batches.DeleteLog)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
