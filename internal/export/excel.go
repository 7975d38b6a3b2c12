package export

import (
	"fmt"
	"strconv"

	"github.com/khrees2412/jobscout/pkg/models"
	"github.com/xuri/excelize/v2"
)

const sheet = "Jobs"

// Columns is the header row written by SaveExcel and expected by LoadExcel
var Columns = []string{
	"Job Title", "Company Name", "Company Rating", "Review Count", "Salary Min", "Salary Max",
	"Salary Period", "Job Type", "Location", "Work From Home", "Benefits", "URL",
}

// SaveExcel writes records to a new workbook at path, one row per record
func SaveExcel(path string, records []models.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		row := []any{
			r.Title, r.CompanyName, optional(r.CompanyRating), optional(r.ReviewCount),
			r.SalaryMin, r.SalaryMax, r.SalaryPeriod, r.JobType, r.Location,
			r.WorkFromHome, r.Benefits, r.URL,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func optional[T int | float64](v *T) any {
	if v == nil {
		return ""
	}
	return *v
}

// LoadExcel reads records back from the first sheet of a workbook written
// by SaveExcel. Columns are matched by header name.
func LoadExcel(path string) ([]models.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	if _, ok := col["URL"]; !ok {
		return nil, fmt.Errorf("%s: missing URL column", path)
	}

	records := make([]models.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		records = append(records, models.Record{
			Title:         get("Job Title"),
			CompanyName:   get("Company Name"),
			CompanyRating: floatPtr(get("Company Rating")),
			ReviewCount:   intPtr(get("Review Count")),
			SalaryMin:     floatOrZero(get("Salary Min")),
			SalaryMax:     floatOrZero(get("Salary Max")),
			SalaryPeriod:  get("Salary Period"),
			JobType:       get("Job Type"),
			Location:      get("Location"),
			WorkFromHome:  get("Work From Home"),
			Benefits:      get("Benefits"),
			URL:           get("URL"),
		})
	}
	return records, nil
}

func floatPtr(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func intPtr(s string) *int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func floatOrZero(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
