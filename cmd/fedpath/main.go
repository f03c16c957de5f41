// Command fedpath computes FED curves for an egress path through a B-RISK results set.
//
//	fedpath --results run1.zip --rooms Lounge,Corridor --transitions 60 --model both
//	fedpath --results run1.zip --variable "HRR (kW)" --rooms Lounge
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"tenability"
	"tenability/internal/brisk"
	"tenability/internal/config"
	"tenability/internal/fed"
	"tenability/internal/logger"
	"tenability/internal/models"
	"tenability/internal/report"

	"github.com/spf13/pflag"
)

const (
	modelBoth  = "both"
	formatTSV  = "tsv"
	formatJSON = "json"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "fedpath:", err)
		}
		os.Exit(1)
	}
}

type options struct {
	results     string
	rooms       []string
	transitions []float64
	model       string
	format      string
	listRooms   bool
	events      bool
	variable    string
}

// flagKeys maps flags onto config keys so configs/config.yml and TENABILITY_* apply.
var flagKeys = map[string]string{
	"monitoring-height": "fed.monitoring_height",
	"threshold":         "fed.threshold",
	"strict":            "fed.strict_range",
	"log-level":         "log.level",
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("fedpath", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	var opt options
	fs.StringVarP(&opt.results, "results", "r", "", "results directory or zip archive")
	fs.StringSliceVar(&opt.rooms, "rooms", nil, "rooms visited in order, comma-separated")
	fs.Float64SliceVar(&opt.transitions, "transitions", nil, "times (s) the occupant leaves each room but the last")
	fs.StringVarP(&opt.model, "model", "m", modelBoth, "co, thermal or both")
	fs.StringVarP(&opt.format, "format", "f", formatTSV, "tsv or json")
	fs.BoolVar(&opt.listRooms, "list-rooms", false, "print the rooms and exit")
	fs.BoolVar(&opt.events, "events", false, "print sprinkler and detector activations and exit")
	fs.StringVar(&opt.variable, "variable", "", "print one results column, e.g. \"HRR (kW)\", for --rooms (default all rooms) and exit")
	fs.Float64("monitoring-height", fed.DefaultMonitoringHeight, "monitoring height above floor, m")
	fs.Float64("threshold", fed.DefaultThreshold, "FED threshold to report")
	fs.Bool("strict", false, "reject transition times outside a room's results")
	fs.String("log-level", logger.WarnLevel, "debug, info, warn or error")
	cfgFile := fs.StringP("config", "c", "", "config file (default configs/config.yml if present)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	v := config.New()
	v.SetDefault("log.level", logger.WarnLevel)
	if err := config.BindFlags(v, fs, flagKeys); err != nil {
		return err
	}
	if err := config.ReadFile(v, *cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if err := opt.validate(); err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	sim, err := brisk.NewLoader(log).Load(opt.results)
	if err != nil {
		return err
	}

	if opt.listRooms || opt.events {
		return writeCatalogue(stdout, sim, opt)
	}
	if opt.variable != "" {
		return writeVariable(stdout, sim, opt)
	}

	responses, curves, err := computeAll(sim, opt, cfg.FED)
	if err != nil {
		return err
	}
	for _, r := range responses {
		log.Infow("fed_summary", "model", r.Model, "crossed", r.Report.Crossed)
		fmt.Fprintln(stderr, r.Summary)
	}

	if opt.format == formatJSON {
		return writeJSON(stdout, responses)
	}
	return report.WriteTSV(stdout, curves)
}

func (o options) validate() error {
	if o.results == "" {
		return fmt.Errorf("--results is required: %w", errUsage)
	}
	if o.format != formatTSV && o.format != formatJSON {
		return fmt.Errorf("--format %q: %w", o.format, errUsage)
	}
	if o.listRooms || o.events || o.variable != "" {
		return nil
	}
	if len(o.rooms) == 0 {
		return fmt.Errorf("--rooms is required: %w", errUsage)
	}
	switch o.model {
	case models.ModelCO, models.ModelThermal, modelBoth:
		return nil
	default:
		return fmt.Errorf("--model %q: %w", o.model, errUsage)
	}
}

func (o options) modelList() []string {
	if o.model == modelBoth {
		return []string{models.ModelCO, models.ModelThermal}
	}
	return []string{o.model}
}

func computeAll(sim *brisk.Simulation, opt options, prm fed.Params) ([]tenability.PathResponse, []report.Curve, error) {
	path := fed.Path{Rooms: trimAll(opt.rooms), TransitionTimes: opt.transitions}
	segments, err := fed.Segments(sim.Store, path)
	if err != nil {
		return nil, nil, err
	}
	end := segments[len(segments)-1].End

	var (
		responses []tenability.PathResponse
		curves    []report.Curve
	)
	for _, model := range opt.modelList() {
		var series models.FEDSeries
		if model == models.ModelCO {
			series, err = fed.ComputeCO(sim.Store, path, prm)
		} else {
			series, err = fed.ComputeThermal(sim.Store, sim.Store, path, prm)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", report.Label(model), err)
		}
		rep := fed.Summarize(model, series, segments, prm.Threshold)
		responses = append(responses, tenability.PathResponse{
			Model:   model,
			Curve:   tenability.NewFEDCurve(series),
			Report:  tenability.NewVerdict(rep),
			Summary: report.Summary(rep),
			Events:  eventsUntil(sim.Events, end),
		})
		curves = append(curves, report.Curve{Label: report.Label(model), Series: series})
	}
	return responses, curves, nil
}

// eventsUntil keeps activations up to end; a NaN end keeps them all.
func eventsUntil(events []models.SimulationEvent, end float64) []models.SimulationEvent {
	var out []models.SimulationEvent
	for _, e := range events {
		if e.Time <= end || math.IsNaN(end) {
			out = append(out, e)
		}
	}
	return out
}

func writeCatalogue(w io.Writer, sim *brisk.Simulation, opt options) error {
	if opt.format == formatJSON {
		out := struct {
			Name   string                   `json:"name"`
			End    tenability.Number        `json:"end_time"`
			Rooms  []models.RoomGeometry    `json:"rooms,omitempty"`
			Events []models.SimulationEvent `json:"events,omitempty"`
		}{Name: sim.Name, End: tenability.Number(sim.End)}
		if opt.listRooms {
			out.Rooms = sim.Geometry
		}
		if opt.events {
			out.Events = sim.Events
		}
		return writeJSON(w, out)
	}

	if opt.listRooms {
		if err := report.WriteRoomsTSV(w, sim.Geometry); err != nil {
			return err
		}
	}
	if opt.listRooms && opt.events {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	if opt.events {
		return report.WriteEventsTSV(w, sim.Events)
	}
	return nil
}

func writeVariable(w io.Writer, sim *brisk.Simulation, opt options) error {
	rooms := trimAll(opt.rooms)
	if len(rooms) == 0 {
		rooms = sim.Store.Rooms()
	}
	name := strings.TrimSpace(opt.variable)

	vars := make([]report.RoomVariable, 0, len(rooms))
	for _, room := range rooms {
		v, err := sim.Variable(room, name)
		if err != nil {
			return err
		}
		vars = append(vars, report.RoomVariable{Room: room, Variable: v})
	}

	if opt.format == formatJSON {
		out := make([]tenability.Variable, len(vars))
		for i, v := range vars {
			out[i] = tenability.NewVariable(v.Room, v.Variable)
		}
		return writeJSON(w, out)
	}
	return report.WriteVariableTSV(w, vars)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
