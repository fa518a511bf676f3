package api

import (
	"fmt"

	"marketdash/internal/dashboard/memorystore"
	"marketdash/internal/dashboard/registry"

	"github.com/xuri/excelize/v2"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names of the exported workbook.
const (
	SheetCurrencies  = "Currencies"
	SheetCommodities = "Commodities"
	SheetMacro       = "Macro"
)

var snapshotHeader = []any{"Code", "Name", "Group", "Unit", "Price", "Prev Close", "Change %", "Volatility", "Volume"}

// BuildWorkbook renders the state's tables into one sheet per family plus a macro sheet.
// The caller closes the returned file.
func BuildWorkbook(st *memorystore.State) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetCurrencies); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSnapshotSheet(f, SheetCurrencies, st.Table(registry.FamilyCurrencies)); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(SheetCommodities); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSnapshotSheet(f, SheetCommodities, st.Table(registry.FamilyCommodities)); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(SheetMacro); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeMacroSheet(f, st); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func writeSnapshotSheet(f *excelize.File, sheet string, tbl *memorystore.FamilyTable) error {
	if err := f.SetSheetRow(sheet, "A1", &snapshotHeader); err != nil {
		return err
	}
	for i, r := range tbl.Rows {
		row := []any{r.Code, r.Name, r.Group, r.Unit, r.Price, r.PrevClose, r.ChangePct, r.Volatility, r.Volume}
		if err := f.SetSheetRow(sheet, cell(i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeMacroSheet(f *excelize.File, st *memorystore.State) error {
	rows := [][]any{{"Index", "Symbol", "Value", "Source"}}
	for _, q := range st.Macro.Indices {
		rows = append(rows, []any{q.Name, q.Symbol, q.Display(), q.Source})
	}

	rows = append(rows, []any{}, []any{"Central Bank", "Rate %"})
	for _, r := range st.Macro.PolicyRates {
		rows = append(rows, []any{r.Bank, r.Rate})
	}
	if st.Macro.RatesStale {
		rows = append(rows, []any{st.Macro.RatesNote})
	}

	rows = append(rows, []any{}, []any{"Indicator", "Value", "Status"})
	for _, v := range st.Macro.StressIndicators {
		rows = append(rows, []any{v.Name, v.Value, v.Status})
	}

	for i := range rows {
		if len(rows[i]) == 0 {
			continue
		}
		if err := f.SetSheetRow(SheetMacro, cell(i+1), &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func cell(row int) string {
	return fmt.Sprintf("A%d", row)
}
