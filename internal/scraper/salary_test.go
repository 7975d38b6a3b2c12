package scraper

import (
	"testing"

	"github.com/khrees2412/jobscout/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalary(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		low    float64
		high   float64
		period string
	}{
		{"range per hour", "$20.00 - $30.00 por hora", 20, 30, "hora"},
		{"single amount per year", "$45,000.00 al año", 0, 45000, "año"},
		{"range per month", "$15,000 a $18,500 al mes", 15000, 18500, "mes"},
		{"case insensitive period", "$100 POR HORA", 0, 100, "hora"},
		{"no period", "$12,000 - $14,000", 12000, 14000, models.NotSpecified},
		{"no numbers", "Salario competitivo", 0, 0, models.NotFound},
		{"empty", "", 0, 0, models.NotFound},
		{"three numbers", "$10 - $20 o $30 por hora", 0, 0, "hora"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high, period, err := ParseSalary(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.low, low)
			assert.Equal(t, tt.high, high)
			assert.Equal(t, tt.period, period)
		})
	}
}

func TestFirstInt(t *testing.T) {
	n, err := firstInt("1,234 evaluaciones")
	require.NoError(t, err)
	assert.Equal(t, 1234, n)

	n, err = firstInt("Ver 87 reseñas")
	require.NoError(t, err)
	assert.Equal(t, 87, n)

	_, err = firstInt("sin evaluaciones")
	assert.Error(t, err)
}
