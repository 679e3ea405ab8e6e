package qr

import "github.com/gin-gonic/gin"

func SetupQRRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/qr", controller.PNG) // GET /api/v1/qr
}

// SetupLegacyRoutes keeps the path printed on existing posters
func SetupLegacyRoutes(engine *gin.Engine, controller *Controller) {
	engine.GET("/qr", controller.PNG) // GET /qr
}
