package brisk

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

const sampleLog = `{\rtf1\ansi\ansicpg1252\deff0{\fonttbl{\f0\fnil Courier New;}}
{\colortbl ;\red0\green0\blue0;}
\viewkind4\uc1\pard\f0\fs20 B-RISK run log\par
65 sec Sprinkler 1 responded. Actuation temp reached\par
120 sec Smoke detector 2 operates\par
Ambient 25\'b0C\par
\par
}`

const sampleInput = `<?xml version="1.0" encoding="utf-8"?>
<simulation>
  <rooms>
    <room id="1">
      <description>Lounge</description>
      <length>5</length>
      <width>4</width>
      <max_height>2.4</max_height>
      <min_height>2.4</min_height>
    </room>
    <room id="2">
      <description>Corridor</description>
      <length>8</length>
      <width>1.2</width>
      <max_height>2.7</max_height>
      <min_height>2.4</min_height>
    </room>
  </rooms>
</simulation>`

var roomHeader = []interface{}{
	"Time (sec)", "Layer (m)", "Upper Layer Temp (C)", "Lower Layer Temp (C)",
	"CO2 Upper(%)", "CO2 Lower(%)", "CO Upper (ppm)", "CO Lower(ppm)",
	"O2 Upper (%)", "O2 Lower (%)", "HRR (kW)",
}

// buildWorkbook writes two rooms sampled every 30 s up to 120 s, an Outside
// sheet and an unrelated sheet.
func buildWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for _, sheet := range []string{"Room 1", "Room 2", "Outside", "Vents"} {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatalf("delete sheet: %v", err)
	}

	for i, sheet := range []string{"Room 1", "Room 2"} {
		hdr := roomHeader
		if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
			t.Fatalf("header: %v", err)
		}
		for r := 0; r <= 4; r++ {
			tm := float64(30 * r)
			row := []interface{}{tm, 2.4 - 0.3*float64(r), 20 + 50*float64(r+i), 20.0, 0.5, 0.04, 100 * float64(r), 0.0, 20.0, 20.9, 10.0}
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				t.Fatalf("row: %v", err)
			}
		}
	}
	out := []interface{}{"Time (sec)", "Temp (C)"}
	if err := f.SetSheetRow("Outside", "A1", &out); err != nil {
		t.Fatalf("outside header: %v", err)
	}
	for r := 0; r <= 4; r++ {
		row := []interface{}{float64(30 * r), 20.0}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow("Outside", cell, &row); err != nil {
			t.Fatalf("outside row: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func fixtureFiles(t *testing.T) map[string][]byte {
	t.Helper()
	return map[string][]byte{
		"run1_log.rtf":      []byte(sampleLog),
		"input1.xml":        []byte(sampleInput),
		"run1_results.xlsx": buildWorkbook(t),
	}
}

func writeDir(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func writeZip(t *testing.T, files map[string][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run1.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, data := range files {
		w, err := zw.Create("run1/" + name)
		if err != nil {
			t.Fatalf("zip entry: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("file close: %v", err)
	}
	return path
}
