package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEUR(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "0,00 €"},
		{"cents only", 0.5, "0,50 €"},
		{"no grouping under a thousand", 999.99, "999,99 €"},
		{"one group", 1234.56, "1 234,56 €"},
		{"exact thousand", 1000, "1 000,00 €"},
		{"millions", 1234567.89, "1 234 567,89 €"},
		{"negative", -1234.5, "-1 234,50 €"},
		{"rounds to two decimals", 1909.2, "1 909,20 €"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEUR(tt.amount))
		})
	}
}
