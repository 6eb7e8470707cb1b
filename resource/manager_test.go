package resource

import (
	"path/filepath"
	"testing"

	"github.com/adnsv/fastxl/reader"
	"github.com/adnsv/fastxl/xl"
)

func TestSaveAndReopenRoundTrip(t *testing.T) {
	wb, err := xl.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	sh, err := wb.AddSheet("Sheet1")
	if err != nil {
		t.Fatalf("AddSheet: %v", err)
	}
	if err := sh.SetNumber(0, 0, 42); err != nil {
		t.Fatalf("SetNumber: %v", err)
	}
	if err := sh.SetString(0, 1, "hello"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	if err := sh.SetBool(1, 0, true); err != nil {
		t.Fatalf("SetBool: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := Save(wb, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := reader.OpenForReading(path)
	if err != nil {
		t.Fatalf("OpenForReading: %v", err)
	}
	sheets := reopened.Sheets()
	if len(sheets) != 1 {
		t.Fatalf("got %d sheets, want 1", len(sheets))
	}
	if got := sheets[0].Name(); got != "Sheet1" {
		t.Errorf("sheet name = %q, want Sheet1", got)
	}

	numView, ok := sheets[0].Get(0, 0)
	if !ok || numView.Kind() != xl.KindCellNumber {
		t.Fatalf("(0,0) got=%v kind=%v, want a present number cell", ok, numView.Kind())
	}
	if v, _ := numView.Float64(); v != 42 {
		t.Errorf("(0,0) = %v, want 42", v)
	}

	strView, ok := sheets[0].Get(0, 1)
	if !ok || strView.Kind() != xl.KindCellString {
		t.Fatalf("(0,1) got=%v kind=%v, want a present string cell", ok, strView.Kind())
	}
	if v, _ := strView.String(); v != "hello" {
		t.Errorf("(0,1) = %q, want hello", v)
	}

	boolView, ok := sheets[0].Get(1, 0)
	if !ok || boolView.Kind() != xl.KindCellBoolean {
		t.Fatalf("(1,0) got=%v kind=%v, want a present bool cell", ok, boolView.Kind())
	}
	if v, _ := boolView.Bool(); !v {
		t.Errorf("(1,0) = %v, want true", v)
	}
}

func TestSaveRejectsClosedWorkbook(t *testing.T) {
	wb, err := xl.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	wb.Close()

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := Save(wb, path); err == nil {
		t.Error("Save on a closed workbook succeeded, want an error")
	}
}

func TestSaveRejectsReadOnlyWorkbook(t *testing.T) {
	wb, err := xl.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := wb.AddSheet("Sheet1"); err != nil {
		t.Fatalf("AddSheet: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := Save(wb, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := reader.OpenForReading(path)
	if err != nil {
		t.Fatalf("OpenForReading: %v", err)
	}
	if err := Save(reopened, path); err == nil {
		t.Error("Save on a read-only workbook succeeded, want an error")
	}
}
