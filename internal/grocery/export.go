package grocery

import (
	"fmt"
	"io"

	"menuplanner-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Grocery List"

// WriteWorkbook writes list as an xlsx workbook, one row per ingredient in
// shopping order.
func WriteWorkbook(w io.Writer, list *models.GroceryList) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return err
	}

	period := fmt.Sprintf("%s - %s", list.StartOfWeek.Format("2006-01-02"), list.EndOfWeek.Format("2006-01-02"))
	if err := f.SetCellValue(exportSheet, "A1", "Grocery list "+period); err != nil {
		return err
	}

	header := []interface{}{"Category", "Ingredient", "Quantity", "Unit", "Description"}
	if err := f.SetSheetRow(exportSheet, "A3", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheet, "A1", "E3", bold); err != nil {
		return err
	}

	for i, item := range SortIngredients(list.Ingredients) {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return err
		}
		row := []interface{}{
			string(item.Ingredient.Category),
			item.Ingredient.Name,
			item.Quantity.InexactFloat64(),
			string(item.Ingredient.Unit),
			item.Ingredient.Description,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "B", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(exportSheet, "E", "E", 40); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
