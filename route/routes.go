package route

import (
	"github.com/gin-gonic/gin"

	"cafewifi/controller"
)

// CafeRoutes registers the resource API endpoints. Paths match the
// original public API, including the unauthenticated PATCH.
func CafeRoutes(router *gin.Engine, ctl *controller.CafeController) {
	router.GET("/random", ctl.RandomCafe)
	router.GET("/all", ctl.GetAllCafes)
	router.GET("/search", ctl.SearchCafes)
	router.POST("/add", ctl.AddCafe)
	router.POST("/add/bulk", ctl.BulkAddCafes)
	router.PATCH("/update-price/:id", ctl.UpdatePrice)
	router.DELETE("/report-closed/:id", ctl.ReportClosed)
}
