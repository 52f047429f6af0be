package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/artauction/auctionapi/internal/dto"
	"github.com/artauction/auctionapi/internal/repository"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeader = []string{"id", "name", "artist_id", "category_id", "price", "reviews", "description"}

// exportProducts streams the whole catalogue as csv (default) or xlsx
//
// @Summary export the catalogue
// @Tags Products
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} webserver.ErrorBody
// @Router /Products/export [get]
func exportProducts(c echo.Context) error {
	format := strings.ToLower(strings.TrimSpace(c.QueryParam("format")))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		return fail(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx", nil)
	}
	items, err := GetRepos(c).Products.GetAll(c.Request().Context(), repository.Page{})
	if err != nil {
		return serverError(c, err)
	}
	rows := dto.AdaptAll[dto.ProductRow](items)

	var body []byte
	mime := "text/csv; charset=utf-8"
	if format == "csv" {
		body, err = gocsv.MarshalBytes(&rows)
	} else {
		body, err = productsXLSX(rows)
		mime = mimeXLSX
	}
	if err != nil {
		return serverError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=products.%s", format))
	return c.Blob(http.StatusOK, mime, body)
}

func productsXLSX(rows []dto.ProductRow) ([]byte, error) {
	const sheet = "Products"
	xlsx := excelize.NewFile()
	xlsx.SetSheetName("Sheet1", sheet)
	for i, h := range exportHeader {
		xlsx.SetCellValue(sheet, cellName(i, 1), h)
	}
	for r, row := range rows {
		values := []interface{}{row.ID, row.Name, row.ArtistID, row.CategoryID, row.Price, row.Reviews, row.Description}
		for i, v := range values {
			xlsx.SetCellValue(sheet, cellName(i, r+2), v)
		}
	}
	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write xlsx")
	}
	return buf.Bytes(), nil
}

// cellName converts a zero based column and one based row to A1 notation.
func cellName(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}
