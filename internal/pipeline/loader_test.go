package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rbastos/kdpipe/internal/model"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}

func newTestLoader() *Loader {
	return NewLoader(model.DefaultConfig().Input)
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, `Empresa,Indexador,Valor_Consolidado_2024
Alpha S.A.,"CDI + 1,30% a.a.","1.234.567,89"
Beta Ltda,"Pré-fixado 6,00% a.a.",500000.50
`)

	records, err := newTestLoader().LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Company != "Alpha S.A." {
		t.Errorf("Expected company Alpha S.A., got %q", first.Company)
	}
	if first.Description != "CDI + 1,30% a.a." {
		t.Errorf("Unexpected description %q", first.Description)
	}
	// Brazilian formatting: dots are thousands, comma is the decimal
	if first.Amount.String() != "1234567.89" {
		t.Errorf("Expected amount 1234567.89, got %s", first.Amount)
	}
	if first.Line != 2 {
		t.Errorf("Expected line 2, got %d", first.Line)
	}

	if records[1].Amount.String() != "500000.5" {
		t.Errorf("Expected amount 500000.5, got %s", records[1].Amount)
	}
}

func TestLoadCSV_SkipsEmptyRows(t *testing.T) {
	path := writeCSV(t, `Empresa,Indexador,Valor_Consolidado_2024
Alpha,"CDI + 1,30%",100
,,
Beta,"DI + 0,90%",200
`)

	records, err := newTestLoader().LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	// line numbers reflect file position, not record count
	if records[1].Line != 4 {
		t.Errorf("Expected Beta on line 4, got %d", records[1].Line)
	}
}

func TestLoadCSV_CaseInsensitiveColumns(t *testing.T) {
	path := writeCSV(t, `EMPRESA,indexador,valor_consolidado_2024
Alpha,"CDI + 1,30%",100
`)

	records, err := newTestLoader().LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(records) != 1 || records[0].Company != "Alpha" {
		t.Errorf("Expected 1 Alpha record, got %+v", records)
	}
}

func TestLoadCSV_MissingAmountColumn(t *testing.T) {
	path := writeCSV(t, `Empresa,Indexador
Alpha,"CDI + 1,30%"
`)

	records, err := newTestLoader().LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if !records[0].Amount.IsZero() {
		t.Errorf("Expected zero amount without the column, got %s", records[0].Amount)
	}
}

func TestLoadCSV_MissingRequiredColumn(t *testing.T) {
	path := writeCSV(t, `Empresa,Taxa
Alpha,"CDI + 1,30%"
`)

	if _, err := newTestLoader().LoadCSV(path); err == nil {
		t.Fatal("Expected error for missing rate column")
	}
}

func TestLoadCSV_UnparseableAmount(t *testing.T) {
	path := writeCSV(t, `Empresa,Indexador,Valor_Consolidado_2024
Alpha,"CDI + 1,30%",n/d
`)

	records, err := newTestLoader().LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if !records[0].Amount.IsZero() {
		t.Errorf("Expected zero amount for unparseable value, got %s", records[0].Amount)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"1.234.567,89", "1234567.89"},
		{"1234567.89", "1234567.89"},
		{"1,50", "1.5"},
		{"1000", "1000"},
		{"", "0"},
		{"abc", "0"},
	}

	for _, tc := range cases {
		if got := parseAmount(tc.raw); got.String() != tc.want {
			t.Errorf("parseAmount(%q): expected %s, got %s", tc.raw, tc.want, got)
		}
	}
}
