// Package report renders FED results for people and spreadsheets.
package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"tenability/internal/fed"
	"tenability/internal/models"
)

// Label returns the display name of a model's dose, e.g. FED_CO.
func Label(model string) string {
	switch model {
	case models.ModelCO:
		return "FED_CO"
	case models.ModelThermal:
		return "FED_thermal"
	default:
		return "FED_" + model
	}
}

// PathPrefix renders segments as "Lounge (0-60s) - Corridor (60-180s)".
func PathPrefix(segments []models.Segment) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = fmt.Sprintf("%s (%s-%ss)", s.Room, plain(s.Start), plain(s.End))
	}
	return strings.Join(parts, " - ")
}

// Summary is the one-line verdict for a path computation.
func Summary(r fed.Report) string {
	prefix := PathPrefix(r.Segments)
	if !r.Crossed {
		return fmt.Sprintf("%s: Max %s was %s", prefix, Label(r.Model), fixed(r.MaxFED, 3))
	}
	return fmt.Sprintf("%s: %s exceeds %s at %s s",
		prefix, Label(r.Model), fixed(r.Threshold, 2), whole(r.CrossingTime))
}

// Curve is one labelled FED series.
type Curve struct {
	Label  string
	Series models.FEDSeries
}

// WriteTSV writes curves in long form: label, time, fed.
func WriteTSV(w io.Writer, curves []Curve) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("label\ttime_s\tfed\n"); err != nil {
		return err
	}
	for _, c := range curves {
		for i := range c.Series.Times {
			if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", c.Label, plain(c.Series.Times[i]), rounded(c.Series.FED[i], 6)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// RoomVariable is one results column tagged with its room.
type RoomVariable struct {
	Room string
	models.Variable
}

// WriteVariableTSV writes columns in long form: room, variable, time, value.
func WriteVariableTSV(w io.Writer, vars []RoomVariable) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("room\tvariable\ttime_s\tvalue\n"); err != nil {
		return err
	}
	for _, v := range vars {
		for i := range v.Times {
			if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\t%s\n", v.Room, v.Name, plain(v.Times[i]), plain(v.Values[i])); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WriteEventsTSV lists activations as name, type, time.
func WriteEventsTSV(w io.Writer, events []models.SimulationEvent) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("name\ttype\ttime_s\n"); err != nil {
		return err
	}
	for _, e := range events {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", e.Name, e.Type, plain(e.Time)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteRoomsTSV lists room geometry as name, id, length, width, min and max height.
func WriteRoomsTSV(w io.Writer, rooms []models.RoomGeometry) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("name\tid\tlength_m\twidth_m\tmin_height_m\tmax_height_m\n"); err != nil {
		return err
	}
	for _, r := range rooms {
		if _, err := fmt.Fprintf(bw, "%s\t%d\t%s\t%s\t%s\t%s\n",
			r.Name, r.ID, plain(r.Length), plain(r.Width), plain(r.MinHeight), plain(r.MaxHeight)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func plain(v float64) string {
	if !finite(v) {
		return "nan"
	}
	return decimal.NewFromFloat(v).String()
}

func fixed(v float64, places int32) string {
	if !finite(v) {
		return "nan"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func rounded(v float64, places int32) string {
	if !finite(v) {
		return "nan"
	}
	return decimal.NewFromFloat(v).Round(places).String()
}

func whole(v float64) string {
	if !finite(v) {
		return "nan"
	}
	return decimal.NewFromFloat(v).Truncate(0).String()
}
