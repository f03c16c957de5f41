package brisk

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"tenability/internal/models"
)

// OutsideSheet holds the ambient conditions and defines the simulation span.
const OutsideSheet = "Outside"

var (
	ErrMissingColumn    = errors.New("missing column")
	ErrBadCell          = errors.New("cell is not a number")
	ErrVariableNotFound = errors.New("variable not found")
)

var roomSheet = regexp.MustCompile(`^Room (\d+)$`)

// column setters keyed by normalized header text
var columns = map[string]func(*models.Sample) *float64{
	"time(sec)":         func(s *models.Sample) *float64 { return &s.Time },
	"time(s)":           func(s *models.Sample) *float64 { return &s.Time },
	"layer(m)":          func(s *models.Sample) *float64 { return &s.LayerHeight },
	"layerheight(m)":    func(s *models.Sample) *float64 { return &s.LayerHeight },
	"co2lower(%)":       func(s *models.Sample) *float64 { return &s.CO2Lower },
	"co2upper(%)":       func(s *models.Sample) *float64 { return &s.CO2Upper },
	"colower(ppm)":      func(s *models.Sample) *float64 { return &s.COLower },
	"coupper(ppm)":      func(s *models.Sample) *float64 { return &s.COUpper },
	"o2lower(%)":        func(s *models.Sample) *float64 { return &s.O2Lower },
	"o2upper(%)":        func(s *models.Sample) *float64 { return &s.O2Upper },
	"upperlayertemp(c)": func(s *models.Sample) *float64 { return &s.UpperLayerTemp },
	"lowerlayertemp(c)": func(s *models.Sample) *float64 { return &s.LowerLayerTemp },
}

// SampleVariables are the headers of the columns held in models.Sample.
var SampleVariables = []string{
	"Layer Height (m)",
	"CO2 Lower(%)",
	"CO2 Upper(%)",
	"CO Lower (ppm)",
	"CO Upper (ppm)",
	"O2 Lower (%)",
	"O2 Upper (%)",
	"Upper Layer Temp (C)",
	"Lower Layer Temp (C)",
}

// Results is the content of a _results.xlsx workbook.
type Results struct {
	Rooms map[string]models.RoomSeries
	// Variables holds every other numeric column of each room sheet.
	Variables map[string]models.RoomVariables
	// Order lists room names in sheet order.
	Order []string
	Start float64
	End   float64
}

// ReadResults parses the workbook. "Room n" sheets are renamed to the
// description of room n in geometry; other sheets except Outside are ignored.
func ReadResults(data []byte, geometry []models.RoomGeometry) (*Results, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open results workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	byID := make(map[int]string, len(geometry))
	for _, g := range geometry {
		byID[g.ID] = g.Name
	}

	res := &Results{
		Rooms:     make(map[string]models.RoomSeries),
		Variables: make(map[string]models.RoomVariables),
		Start:     math.NaN(),
		End:       math.NaN(),
	}
	for _, sheet := range f.GetSheetList() {
		m := roomSheet.FindStringSubmatch(sheet)
		if sheet != OutsideSheet && m == nil {
			continue
		}
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		rs, err := ParseTable(rows)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}

		if sheet == OutsideSheet {
			if len(rs) > 0 {
				res.Start, res.End = rs[0].Time, rs.MaxTime()
			}
			continue
		}

		name := sheet
		if id, _ := strconv.Atoi(m[1]); byID[id] != "" {
			name = byID[id]
		}
		if _, dup := res.Rooms[name]; dup {
			return nil, fmt.Errorf("sheet %q: room %q appears twice", sheet, name)
		}
		vars, err := ParseVariables(rows)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		res.Rooms[name] = rs
		res.Variables[name] = vars
		res.Order = append(res.Order, name)
	}

	if math.IsNaN(res.End) {
		for _, rs := range res.Rooms {
			if len(rs) == 0 {
				continue
			}
			if math.IsNaN(res.End) || rs.MaxTime() > res.End {
				res.End = rs.MaxTime()
			}
			if math.IsNaN(res.Start) || rs[0].Time < res.Start {
				res.Start = rs[0].Time
			}
		}
	}
	return res, nil
}

// ParseTable turns a sheet, header row first, into samples.
// Unknown and blank headers are skipped, columns that are absent stay NaN,
// and rows with an empty time cell are ignored.
func ParseTable(rows [][]string) (models.RoomSeries, error) {
	if len(rows) == 0 {
		return models.RoomSeries{}, nil
	}
	setters := make(map[int]func(*models.Sample) *float64)
	timeCol := -1
	for i, h := range rows[0] {
		key := normalizeHeader(h)
		set, ok := columns[key]
		if !ok {
			continue
		}
		setters[i] = set
		if strings.HasPrefix(key, "time(") {
			timeCol = i
		}
	}
	if timeCol < 0 {
		return nil, fmt.Errorf("time: %w", ErrMissingColumn)
	}

	out := make(models.RoomSeries, 0, len(rows)-1)
	for r, row := range rows[1:] {
		if timeCol >= len(row) || strings.TrimSpace(row[timeCol]) == "" {
			continue
		}
		s := models.Undefined(math.NaN())
		for col, set := range setters {
			if col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q value %q: %w", r+2, rows[0][col], cell, ErrBadCell)
			}
			*set(&s) = v
		}
		out = append(out, s)
	}
	return out, nil
}

// ParseVariables collects the numeric columns ParseTable does not map onto
// Sample. Blank and "Unnamed" headers are skipped, as is any column holding
// text. Empty cells become NaN.
func ParseVariables(rows [][]string) (models.RoomVariables, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	timeCol := -1
	var cols []int
	for i, h := range rows[0] {
		key := normalizeHeader(h)
		switch {
		case strings.HasPrefix(key, "time("):
			timeCol = i
		case key == "", strings.HasPrefix(key, "unnamed"):
		default:
			if _, known := columns[key]; !known {
				cols = append(cols, i)
			}
		}
	}
	if timeCol < 0 {
		return nil, fmt.Errorf("time: %w", ErrMissingColumn)
	}

	vars := make([]models.Variable, len(cols))
	numeric := make([]bool, len(cols))
	for j, col := range cols {
		vars[j].Name = strings.TrimSpace(rows[0][col])
		numeric[j] = true
	}
	for r, row := range rows[1:] {
		if timeCol >= len(row) || strings.TrimSpace(row[timeCol]) == "" {
			continue
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(row[timeCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d time %q: %w", r+2, row[timeCol], ErrBadCell)
		}
		for j, col := range cols {
			v := math.NaN()
			if col < len(row) {
				if cell := strings.TrimSpace(row[col]); cell != "" {
					if v, err = strconv.ParseFloat(cell, 64); err != nil {
						numeric[j] = false
					}
				}
			}
			vars[j].Times = append(vars[j].Times, t)
			vars[j].Values = append(vars[j].Values, v)
		}
	}

	out := make(models.RoomVariables, 0, len(vars))
	for j, v := range vars {
		if numeric[j] {
			out = append(out, v)
		}
	}
	return out, nil
}

// SampleVariable reads one of the SampleVariables out of rs.
func SampleVariable(rs models.RoomSeries, name string) (models.Variable, bool) {
	key := normalizeHeader(name)
	get, ok := columns[key]
	if !ok || strings.HasPrefix(key, "time(") {
		return models.Variable{}, false
	}
	v := models.Variable{
		Name:   strings.TrimSpace(name),
		Times:  make([]float64, len(rs)),
		Values: make([]float64, len(rs)),
	}
	for _, h := range SampleVariables {
		if normalizeHeader(h) == key {
			v.Name = h
		}
	}
	for i := range rs {
		v.Times[i] = rs[i].Time
		v.Values[i] = *get(&rs[i])
	}
	return v, true
}

func normalizeHeader(h string) string {
	return models.VariableKey(h)
}
