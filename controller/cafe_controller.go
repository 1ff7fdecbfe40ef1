package controller

import (
	"errors"
	"log"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cafewifi/auth"
	"cafewifi/model"
	"cafewifi/store"
)

// CafeController serves the JSON resource API over the cafe store.
type CafeController struct {
	store *store.CafeStore
	guard *auth.Guard
}

func NewCafeController(s *store.CafeStore, g *auth.Guard) *CafeController {
	return &CafeController{store: s, guard: g}
}

// RandomCafe picks one cafe uniformly from the whole collection.
func (ctl *CafeController) RandomCafe(c *gin.Context) {
	cafes, err := ctl.store.GetAll()
	if err != nil {
		internalError(c, err)
		return
	}
	if len(cafes) == 0 {
		c.JSON(http.StatusNotFound, model.Failure(model.KindEmptyCollection, "No cafes in the directory yet"))
		return
	}
	c.JSON(http.StatusOK, model.Success(cafes[rand.Intn(len(cafes))]))
}

func (ctl *CafeController) GetAllCafes(c *gin.Context) {
	cafes, err := ctl.store.GetAll()
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Success(cafes))
}

// SearchCafes filters by exact location match. An empty result set is a
// normal success response, not an error.
func (ctl *CafeController) SearchCafes(c *gin.Context) {
	loc := c.Query("loc")
	cafes, err := ctl.store.FilterByLocation(loc)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.Success(cafes))
}

type addCafeRequest struct {
	Name         string `form:"name" binding:"required"`
	MapURL       string `form:"map_url" binding:"required"`
	ImgURL       string `form:"img_url" binding:"required"`
	Location     string `form:"loc" binding:"required"`
	Seats        string `form:"seats" binding:"required"`
	HasSockets   bool   `form:"sockets"`
	HasToilet    bool   `form:"toilet"`
	HasWifi      bool   `form:"wifi"`
	CanTakeCalls bool   `form:"calls"`
	CoffeePrice  string `form:"coffee_price"`
	APIKey       string `form:"api_key" binding:"required"`
}

// AddCafe creates a new cafe. Field content validation beyond presence is
// the front end's job; the store's unique index on name is the only
// constraint enforced here.
func (ctl *CafeController) AddCafe(c *gin.Context) {
	var req addCafeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Failure(model.KindValidationError, err.Error()))
		return
	}

	if err := ctl.guard.Authorize(req.APIKey); err != nil {
		c.JSON(http.StatusUnauthorized, model.Failure(model.KindUnauthorized, "Sorry, that's not allowed"))
		return
	}

	cafe := model.Cafe{
		Name:         req.Name,
		MapURL:       req.MapURL,
		ImgURL:       req.ImgURL,
		Location:     req.Location,
		Seats:        req.Seats,
		HasSockets:   req.HasSockets,
		HasToilet:    req.HasToilet,
		HasWifi:      req.HasWifi,
		CanTakeCalls: req.CanTakeCalls,
	}
	if req.CoffeePrice != "" {
		cafe.CoffeePrice = &req.CoffeePrice
	}

	if err := ctl.store.Insert(&cafe); err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			c.JSON(http.StatusConflict, model.Failure(model.KindConstraintViolation, "A cafe with that name already exists"))
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.Success(gin.H{"id": cafe.ID}))
}

// UpdatePrice changes coffee_price and nothing else. This endpoint has
// never required a key; the asymmetry with add and report-closed is kept
// deliberately, see DESIGN.md.
func (ctl *CafeController) UpdatePrice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	newPrice, ok := c.GetQuery("new_price")
	if !ok {
		c.JSON(http.StatusBadRequest, model.Failure(model.KindValidationError, "new_price query parameter is required"))
		return
	}

	cafe, err := ctl.store.UpdatePrice(id, newPrice)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, model.Failure(model.KindNotFound, "Sorry, a cafe with that id was not found"))
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.Success(cafe))
}

// ReportClosed deletes a cafe. The key check runs before the existence
// check so a bad key never learns whether an id exists.
func (ctl *CafeController) ReportClosed(c *gin.Context) {
	if err := ctl.guard.Authorize(c.Query("api-key")); err != nil {
		c.JSON(http.StatusUnauthorized, model.Failure(model.KindUnauthorized, "Sorry, that's not allowed"))
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	removed, err := ctl.store.Delete(id)
	if err != nil {
		internalError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, model.Failure(model.KindNotFound, "Sorry, a cafe with that id was not found"))
		return
	}

	c.JSON(http.StatusOK, model.Success(gin.H{"id": id, "deleted": true}))
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Failure(model.KindValidationError, "id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

func internalError(c *gin.Context, err error) {
	log.Printf("internal error: %v", err)
	c.JSON(http.StatusInternalServerError, model.Failure(model.KindInternal, "Unexpected error occurred"))
}
