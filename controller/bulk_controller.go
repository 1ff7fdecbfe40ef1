package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"cafewifi/model"
	"cafewifi/store"
)

// Expected column order in the uploaded sheet, after a header row:
// name, map_url, img_url, location, seats, has_wifi, has_sockets,
// has_toilet, can_take_calls, coffee_price (optional).
const bulkMinColumns = 9

// BulkAddCafes imports cafes from an uploaded Excel sheet. Rows that are
// incomplete or collide with an existing name are skipped, not fatal, so
// a partially bad sheet still loads its good rows.
func (ctl *CafeController) BulkAddCafes(c *gin.Context) {
	if err := ctl.guard.Authorize(c.PostForm("api_key")); err != nil {
		c.JSON(http.StatusUnauthorized, model.Failure(model.KindUnauthorized, "Sorry, that's not allowed"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Failure(model.KindValidationError, "Excel file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		internalError(c, err)
		return
	}
	defer file.Close()

	xl, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Failure(model.KindValidationError, "Failed to parse Excel file"))
		return
	}
	defer xl.Close()

	rows, err := xl.GetRows(xl.GetSheetName(0))
	if err != nil || len(rows) < 2 {
		c.JSON(http.StatusBadRequest, model.Failure(model.KindValidationError, "Excel must have a header and at least one row of data"))
		return
	}

	added := 0
	skipped := 0
	for _, row := range rows[1:] {
		cafe, ok := cafeFromRow(row)
		if !ok {
			skipped++
			continue
		}
		if err := ctl.store.Insert(&cafe); err != nil {
			if errors.Is(err, store.ErrDuplicateName) {
				skipped++
				continue
			}
			internalError(c, err)
			return
		}
		added++
	}

	c.JSON(http.StatusCreated, model.Success(gin.H{"added": added, "skipped": skipped}))
}

func cafeFromRow(row []string) (model.Cafe, bool) {
	if len(row) < bulkMinColumns {
		return model.Cafe{}, false
	}
	for _, cell := range row[:5] {
		if strings.TrimSpace(cell) == "" {
			return model.Cafe{}, false
		}
	}

	flags := make([]bool, 4)
	for i, cell := range row[5:9] {
		v, err := parseFlag(cell)
		if err != nil {
			return model.Cafe{}, false
		}
		flags[i] = v
	}

	cafe := model.Cafe{
		Name:         strings.TrimSpace(row[0]),
		MapURL:       strings.TrimSpace(row[1]),
		ImgURL:       strings.TrimSpace(row[2]),
		Location:     strings.TrimSpace(row[3]),
		Seats:        strings.TrimSpace(row[4]),
		HasWifi:      flags[0],
		HasSockets:   flags[1],
		HasToilet:    flags[2],
		CanTakeCalls: flags[3],
	}
	if len(row) > 9 {
		if price := strings.TrimSpace(row[9]); price != "" {
			cafe.CoffeePrice = &price
		}
	}
	return cafe, true
}

func parseFlag(cell string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(cell))
}
