package web

import "github.com/gin-gonic/gin"

func Routes(router *gin.Engine, h *Handler) {
	router.GET("/", h.Home)
	router.GET("/cafes", h.AllCafes)
	router.GET("/cafes/:name", h.CafeByName)
	router.GET("/cafes/:name/map-qr", h.MapQR)
	router.POST("/search-location", h.SearchLocation)
	router.GET("/random-cafe", h.RandomCafe)
	router.GET("/add-cafe", h.ShowAddCafe)
	router.POST("/add-cafe", h.SubmitAddCafe)
	router.GET("/delete/:name/:id", h.ShowDelete)
	router.POST("/delete/:name/:id", h.SubmitDelete)
}
