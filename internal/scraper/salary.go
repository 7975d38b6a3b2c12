package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/khrees2412/jobscout/pkg/models"
	"golang.org/x/text/cases"
)

var (
	salaryNumberRe = regexp.MustCompile(`\$?(\d[\d,]*(?:\.\d{2})?)`)
	firstIntRe     = regexp.MustCompile(`\d+`)

	// Checked in order; the first keyword present in the text wins
	salaryPeriods = []string{"hora", "mes", "año"}
)

// ParseSalary splits a salary label such as "$20.00 - $30.00 por hora" into
// its bounds and pay period. A single amount is taken as the maximum. Text
// without amounts yields (0, 0, "Not Found"); more than two amounts yield
// zero bounds with the classified period.
func ParseSalary(text string) (low, high float64, period string, err error) {
	matches := salaryNumberRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, 0, models.NotFound, nil
	}

	amounts := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			return 0, 0, models.NotFound, fmt.Errorf("parse salary amount %q: %w", m[1], err)
		}
		amounts = append(amounts, v)
	}

	period = salaryPeriod(text)
	switch len(amounts) {
	case 1:
		return 0, amounts[0], period, nil
	case 2:
		return amounts[0], amounts[1], period, nil
	default:
		return 0, 0, period, nil
	}
}

func salaryPeriod(text string) string {
	fold := cases.Fold()
	folded := fold.String(text)
	for _, p := range salaryPeriods {
		if strings.Contains(folded, fold.String(p)) {
			return p
		}
	}
	return models.NotSpecified
}

// firstInt parses the first run of digits in text, ignoring comma separators
func firstInt(text string) (int, error) {
	digits := firstIntRe.FindString(strings.ReplaceAll(text, ",", ""))
	if digits == "" {
		return 0, fmt.Errorf("no number in %q", text)
	}
	return strconv.Atoi(digits)
}
