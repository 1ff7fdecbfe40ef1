package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	qrcode "github.com/skip2/go-qrcode"

	"cafewifi/client"
	"cafewifi/model"
)

// Handler renders the site. It holds no state of its own: every page is
// rebuilt from a fresh resource API call.
type Handler struct {
	api      *client.Client
	validate *validator.Validate
}

func NewHandler(api *client.Client) *Handler {
	return &Handler{api: api, validate: NewFormValidator()}
}

func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

func (h *Handler) AllCafes(c *gin.Context) {
	cafes, err := h.api.All(c.Request.Context())
	if err != nil {
		h.renderFailure(c, err)
		return
	}
	c.HTML(http.StatusOK, "cafes.html", gin.H{"Cafes": cafes})
}

// CafeByName scans the full list for an exact name match. The resource
// API has no by-name lookup, so this stays a client-side linear filter.
func (h *Handler) CafeByName(c *gin.Context) {
	name := c.Param("name")
	cafes, err := h.api.All(c.Request.Context())
	if err != nil {
		h.renderFailure(c, err)
		return
	}

	matches := filterByName(cafes, name)
	c.HTML(http.StatusOK, "cafe_page.html", gin.H{"Cafes": matches, "Name": name})
}

func (h *Handler) SearchLocation(c *gin.Context) {
	location := c.PostForm("search")
	cafes, err := h.api.Search(c.Request.Context(), location)
	if err != nil {
		h.renderFailure(c, err)
		return
	}
	c.HTML(http.StatusOK, "cafes.html", gin.H{"Cafes": cafes, "Location": location})
}

// RandomCafe wraps the single record as a one-element list so the cafe
// page template serves both views.
func (h *Handler) RandomCafe(c *gin.Context) {
	cafe, err := h.api.Random(c.Request.Context())
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.Kind == model.KindEmptyCollection {
			c.HTML(http.StatusOK, "cafe_page.html", gin.H{"Cafes": []model.Cafe{}, "Notice": "No cafes in the directory yet"})
			return
		}
		h.renderFailure(c, err)
		return
	}
	c.HTML(http.StatusOK, "cafe_page.html", gin.H{"Cafes": []model.Cafe{cafe}})
}

func (h *Handler) ShowAddCafe(c *gin.Context) {
	c.HTML(http.StatusOK, "add-cafe.html", gin.H{"Form": AddCafeForm{}, "FieldErrors": map[string]string{}})
}

// SubmitAddCafe validates locally, submits, then branches on the API's
// answer. A duplicate name or a bad key re-renders the form with a
// notice instead of pretending the create worked.
func (h *Handler) SubmitAddCafe(c *gin.Context) {
	var form AddCafeForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "add-cafe.html", gin.H{"Form": form, "FieldErrors": map[string]string{}, "Notice": "Invalid submission"})
		return
	}

	if fieldErrors := CheckForm(h.validate, form); fieldErrors != nil {
		c.HTML(http.StatusBadRequest, "add-cafe.html", gin.H{"Form": form, "FieldErrors": fieldErrors})
		return
	}

	if _, err := h.api.Add(c.Request.Context(), form.params()); err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			c.HTML(http.StatusOK, "add-cafe.html", gin.H{"Form": form, "FieldErrors": map[string]string{}, "Notice": noticeFor(apiErr)})
			return
		}
		h.renderFailure(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/cafes")
}

func (h *Handler) ShowDelete(c *gin.Context) {
	c.HTML(http.StatusOK, "delete.html", gin.H{"Name": c.Param("name"), "ID": c.Param("id")})
}

// SubmitDelete handles the confirm/cancel pair. Only a confirmed,
// API-acknowledged delete moves on to the list view.
func (h *Handler) SubmitDelete(c *gin.Context) {
	name := c.Param("name")
	if c.PostForm("cancel") != "" {
		c.Redirect(http.StatusSeeOther, "/cafes/"+name)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.HTML(http.StatusBadRequest, "delete.html", gin.H{"Name": name, "ID": c.Param("id"), "Notice": "Invalid cafe id"})
		return
	}

	if err := h.api.ReportClosed(c.Request.Context(), uint(id), c.PostForm("api_key")); err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			c.HTML(http.StatusOK, "delete.html", gin.H{"Name": name, "ID": c.Param("id"), "Notice": noticeFor(apiErr)})
			return
		}
		h.renderFailure(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/cafes")
}

// MapQR serves a QR code for the cafe's map link, for pulling directions
// up on a phone from the cafe page.
func (h *Handler) MapQR(c *gin.Context) {
	name := c.Param("name")
	cafes, err := h.api.All(c.Request.Context())
	if err != nil {
		h.renderFailure(c, err)
		return
	}

	matches := filterByName(cafes, name)
	if len(matches) == 0 {
		c.HTML(http.StatusNotFound, "cafe_page.html", gin.H{"Cafes": []model.Cafe{}, "Name": name})
		return
	}

	png, err := qrcode.Encode(matches[0].MapURL, qrcode.Medium, 256)
	if err != nil {
		h.renderFailure(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func filterByName(cafes []model.Cafe, name string) []model.Cafe {
	matches := []model.Cafe{}
	for _, cafe := range cafes {
		if cafe.Name == name {
			matches = append(matches, cafe)
		}
	}
	return matches
}

// renderFailure distinguishes an unreachable API from everything else so
// the user sees a proper "service unavailable" page, never a blank one.
func (h *Handler) renderFailure(c *gin.Context, err error) {
	if errors.Is(err, client.ErrUnavailable) {
		c.HTML(http.StatusServiceUnavailable, "error.html", gin.H{
			"Message": "The cafe service is unavailable right now. Please try again shortly.",
		})
		return
	}
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"Message": "Something went wrong. Please try again.",
	})
}

func noticeFor(apiErr *model.APIError) string {
	switch apiErr.Kind {
	case model.KindUnauthorized:
		return "API key incorrect"
	case model.KindConstraintViolation:
		return "A cafe with that name is already listed"
	case model.KindNotFound:
		return "That cafe is no longer listed"
	}
	return apiErr.Message
}
