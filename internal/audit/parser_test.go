package audit

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = "Client;Lieu;Adresse;Date;Agent;Appareil;Puissance horaire (kWh);Puissance max (W);Durée (h/j);Quantité\n" +
	"Dupont;Maison principale;12 Rue des Palmiers;2024-03-01;A. Pierre;Réfrigérateur;0,15;300;24;1\n" +
	"Dupont;Maison principale;12 Rue des Palmiers;2024-03-01;A. Pierre;Climatiseur;1,2;1500;6;2\n" +
	"Joseph;Boutique;45 Avenue Centrale;2024-03-02;A. Pierre;Congélateur;0,3;450;24;1\n"

func TestParseCSVRowCountAndOrder(t *testing.T) {
	items := ParseCSV(sampleCSV)
	require.Len(t, items, 3)

	assert.Equal(t, "Réfrigérateur", items[0].Device)
	assert.Equal(t, "Climatiseur", items[1].Device)
	assert.Equal(t, "Congélateur", items[2].Device)

	seen := map[string]bool{}
	for _, item := range items {
		assert.NotEmpty(t, item.ID)
		assert.False(t, seen[item.ID], "identifiers must be unique within a batch")
		seen[item.ID] = true
	}
}

func TestParseCSVFieldMapping(t *testing.T) {
	items := ParseCSV(sampleCSV)
	require.Len(t, items, 3)

	first := items[0]
	assert.Equal(t, "Dupont", first.Client)
	assert.Equal(t, "Maison principale", first.SiteName)
	assert.Equal(t, "12 Rue des Palmiers", first.Address)
	assert.Equal(t, "2024-03-01", first.VisitDate)
	assert.Equal(t, "A. Pierre", first.Agent)
	assert.InDelta(t, 0.15, first.HourlyKWh, 1e-9)
	assert.InDelta(t, 300, first.PeakW, 1e-9)
	assert.InDelta(t, 24, first.DurationHours, 1e-9)
	assert.Equal(t, 1, first.Quantity)
	assert.Zero(t, first.UnitPrice, "unit price is not part of the export")
	assert.True(t, first.CountsForSizing)
}

func TestParseCSVDecimalComma(t *testing.T) {
	items := ParseCSV("h\na;b;c;d;e;f;3,5;1,25;2;4")
	require.Len(t, items, 1)
	assert.InDelta(t, 3.5, items[0].HourlyKWh, 1e-9)
	assert.InDelta(t, 1.25, items[0].PeakW, 1e-9)
}

func TestParseCSVIsTotal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty input", "", 0},
		{"header only", "Client;Lieu;Adresse\n", 0},
		{"blank lines skipped", "h\n\n  \na;b;c;d;e;f;1;2;3;4\n\n", 1},
		{"missing trailing fields", "h\nDupont;Lieu", 1},
		{"garbage numerics", "h\na;b;c;d;e;f;abc;-;n/a;beaucoup", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := ParseCSV(tt.in)
			assert.Len(t, items, tt.want)
		})
	}
}

func TestParseCSVGarbageInZeroOut(t *testing.T) {
	items := ParseCSV("h\na;b;c;d;e;f;abc;;x,y;beaucoup")
	require.Len(t, items, 1)
	assert.Zero(t, items[0].HourlyKWh)
	assert.Zero(t, items[0].PeakW)
	assert.Zero(t, items[0].DurationHours)
	assert.Zero(t, items[0].Quantity)
}

func TestParseCSVBOMAndQuotes(t *testing.T) {
	csv := "\ufeffClient;Lieu;Adresse;Date;Agent;Appareil;kWh;W;h;Qte\n" +
		`"Dupont";" Maison ";"12, Rue";2024;X;"Frigo";"0,5";200;8;2`
	items := ParseCSV(csv)
	require.Len(t, items, 1)
	assert.Equal(t, "Dupont", items[0].Client)
	assert.Equal(t, "Maison", items[0].SiteName, "quotes stripped, then trimmed")
	assert.InDelta(t, 0.5, items[0].HourlyKWh, 1e-9)
}

func TestParseCSVLineEndings(t *testing.T) {
	items := ParseCSV("h\r\na;b;c;d;e;f;1;2;3;4\rx;y;z;d;e;f;1;2;3;4\r\n")
	assert.Len(t, items, 2)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"Client", "Lieu", "Adresse", "Date", "Agent", "Appareil", "kWh", "W", "h", "Qte"}
	for i, hdr := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, hdr))
	}
	values := []interface{}{"Dupont", "Maison", "12 Rue", "2024-03-01", "A. Pierre", "Frigo", 0.15, 300, 24, 2}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	items, err := ParseXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dupont", items[0].Client)
	assert.Equal(t, "Frigo", items[0].Device)
	assert.InDelta(t, 0.15, items[0].HourlyKWh, 1e-9)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestParseXLSXRejectsGarbageBytes(t *testing.T) {
	_, err := ParseXLSX(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}

func TestParseCSVManyRows(t *testing.T) {
	var b bytes.Buffer
	b.WriteString("header\n")
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, "Client %d;Lieu;Adresse %d;2024;Agent;Appareil;0,5;100;4;1\n", i, i)
	}
	items := ParseCSV(b.String())
	assert.Len(t, items, 50)
}
