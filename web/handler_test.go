package web_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafewifi/auth"
	"cafewifi/client"
	"cafewifi/controller"
	"cafewifi/database"
	"cafewifi/model"
	"cafewifi/route"
	"cafewifi/store"
	"cafewifi/web"
)

const testAPIKey = "password123"

// newStack wires the real resource API behind an httptest server and a
// web router in front of it, so these tests cover the whole BFF contract.
func newStack(t *testing.T) (*gin.Engine, *store.CafeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(filepath.Join(t.TempDir(), "cafes.db"))
	require.NoError(t, err)

	s := store.New(db)
	apiRouter := gin.New()
	route.CafeRoutes(apiRouter, controller.NewCafeController(s, auth.NewGuard(testAPIKey)))
	apiServer := httptest.NewServer(apiRouter)
	t.Cleanup(apiServer.Close)

	return newWebRouter(t, apiServer.URL), s
}

func newWebRouter(t *testing.T, apiURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.LoadHTMLGlob("templates/*.html")
	web.Routes(router, web.NewHandler(client.New(apiURL, 2*time.Second)))
	return router
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func postForm(router *gin.Engine, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedCafe(t *testing.T, s *store.CafeStore, name, location string) model.Cafe {
	t.Helper()
	price := "£2.50"
	cafe := model.Cafe{
		Name:        name,
		MapURL:      "https://maps.example.com/" + url.PathEscape(name),
		ImgURL:      "https://img.example.com/" + url.PathEscape(name) + ".jpg",
		Location:    location,
		Seats:       "10-20",
		HasWifi:     true,
		CoffeePrice: &price,
	}
	require.NoError(t, s.Insert(&cafe))
	return cafe
}

func addCafeForm() url.Values {
	return url.Values{
		"name":         {"Bean There"},
		"location":     {"Downtown"},
		"map_url":      {"https://maps.example.com/bt"},
		"img_url":      {"https://img.example.com/bt.jpg"},
		"seats":        {"10-20"},
		"coffee_price": {"£2.50"},
		"api_key":      {testAPIKey},
		"wifi":         {"true"},
	}
}

func TestListViewRendersAllCafes(t *testing.T) {
	router, s := newStack(t)
	seedCafe(t, s, "Bean There", "Downtown")
	seedCafe(t, s, "Grind House", "Uptown")

	w := get(router, "/cafes")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bean There")
	assert.Contains(t, w.Body.String(), "Grind House")
}

func TestListViewWhenAPIIsDown(t *testing.T) {
	deadServer := httptest.NewServer(http.NotFoundHandler())
	deadServer.Close()
	router := newWebRouter(t, deadServer.URL)

	w := get(router, "/cafes")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}

func TestCafePageRendersMatchAndNotFoundState(t *testing.T) {
	router, s := newStack(t)
	seedCafe(t, s, "Bean There", "Downtown")

	w := get(router, "/cafes/Bean%20There")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Downtown")
	assert.Contains(t, w.Body.String(), "seats 10-20")

	w = get(router, "/cafes/No%20Such%20Cafe")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "we don't have a cafe")
}

func TestSearchViewForwardsTheQuery(t *testing.T) {
	router, s := newStack(t)
	seedCafe(t, s, "Bean There", "Downtown")
	seedCafe(t, s, "Grind House", "Uptown")

	w := postForm(router, "/search-location", url.Values{"search": {"Uptown"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Grind House")
	assert.NotContains(t, w.Body.String(), "Bean There")

	w = postForm(router, "/search-location", url.Values{"search": {"Nowhere"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No cafes found")
}

func TestRandomViewRendersASingleCafe(t *testing.T) {
	router, s := newStack(t)
	seedCafe(t, s, "Bean There", "Downtown")

	w := get(router, "/random-cafe")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bean There")
}

func TestRandomViewOnEmptyDirectory(t *testing.T) {
	router, _ := newStack(t)

	w := get(router, "/random-cafe")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No cafes in the directory yet")
}

func TestAddCafeValidationBlocksSubmission(t *testing.T) {
	router, s := newStack(t)

	form := addCafeForm()
	form.Set("img_url", "not a url")
	w := postForm(router, "/add-cafe", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Must be a well-formed URL")

	all, err := s.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all, "create request must not be issued while validation fails")
}

func TestAddCafeSuccessRedirectsToList(t *testing.T) {
	router, s := newStack(t)

	w := postForm(router, "/add-cafe", addCafeForm())
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cafes", w.Header().Get("Location"))

	all, err := s.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Bean There", all[0].Name)
	assert.True(t, all[0].HasWifi)
	assert.False(t, all[0].HasSockets)
}

func TestAddCafeDuplicateNameShowsNotice(t *testing.T) {
	router, s := newStack(t)
	seedCafe(t, s, "Bean There", "Downtown")

	w := postForm(router, "/add-cafe", addCafeForm())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already listed")
}

func TestAddCafeBadKeyShowsNotice(t *testing.T) {
	router, s := newStack(t)

	form := addCafeForm()
	form.Set("api_key", "wrong")
	w := postForm(router, "/add-cafe", form)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "API key incorrect")

	all, err := s.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteCancelReturnsToCafePage(t *testing.T) {
	router, s := newStack(t)
	cafe := seedCafe(t, s, "Bean There", "Downtown")

	w := postForm(router, "/delete/Bean%20There/1", url.Values{"cancel": {"1"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cafes/Bean There", w.Header().Get("Location"))

	_, err := s.GetByID(cafe.ID)
	assert.NoError(t, err)
}

func TestDeleteConfirmWithWrongKeyShowsNotice(t *testing.T) {
	router, s := newStack(t)
	cafe := seedCafe(t, s, "Bean There", "Downtown")

	w := postForm(router, "/delete/Bean%20There/1", url.Values{"confirm": {"1"}, "api_key": {"wrong"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "API key incorrect")

	_, err := s.GetByID(cafe.ID)
	assert.NoError(t, err)
}

func TestDeleteConfirmRemovesAndRedirects(t *testing.T) {
	router, s := newStack(t)
	cafe := seedCafe(t, s, "Bean There", "Downtown")

	w := postForm(router, "/delete/Bean%20There/1", url.Values{"confirm": {"1"}, "api_key": {testAPIKey}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cafes", w.Header().Get("Location"))

	_, err := s.GetByID(cafe.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMapQRServesPNG(t *testing.T) {
	router, s := newStack(t)
	seedCafe(t, s, "Bean There", "Downtown")

	w := get(router, "/cafes/Bean%20There/map-qr")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "\x89PNG"), "expected a PNG body")
}
