package utils

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"spaceexplorer/internal/models"
)

// WriteFavoritesExcel создает Excel файл с избранными снимками
func WriteFavoritesExcel(path string, favorites []models.Favorite) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Favorites"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}

	headers := []string{"Date", "Title", "Media Type", "URL", "HD URL", "Copyright", "Favorited At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for rowIdx, favorite := range favorites {
		rowNum := rowIdx + 2 // Заголовок в первой строке

		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), favorite.APOD.Date)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), favorite.APOD.Title)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), favorite.APOD.MediaType)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), favorite.APOD.URL)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), favorite.APOD.HDURL)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), favorite.APOD.Copyright)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum),
			favorite.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	for i := 1; i <= len(headers); i++ {
		colName, _ := excelize.ColumnNumberToName(i)
		width := 20.0
		if colName == "B" || colName == "D" || colName == "E" {
			width = 40.0
		}
		f.SetColWidth(sheet, colName, colName, width)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(path)
}
