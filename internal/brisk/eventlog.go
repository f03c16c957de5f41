package brisk

import (
	"strconv"
	"strings"

	"tenability/internal/models"
)

// LogLines converts an RTF run log into its text lines.
// The trailing two lines of a run log are always blank and are dropped.
func LogLines(rtf []byte) []string {
	lines := strings.Split(RTFToText(string(rtf)), "\n")
	if len(lines) <= 2 {
		return nil
	}
	lines = lines[:len(lines)-2]
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	return lines
}

// ParseEvents extracts sprinkler and smoke detector activations from log lines.
// Lines look like "65 sec Sprinkler 1 responded ..." and
// "120 sec Smoke detector 2 operates ...".
func ParseEvents(lines []string) []models.SimulationEvent {
	events := make([]models.SimulationEvent, 0)
	for _, line := range lines {
		var (
			typ, label string
			idIdx      int
		)
		switch {
		case strings.Contains(line, "Sprinkler") && strings.Contains(line, "responded"):
			typ, label, idIdx = models.EventSprinkler, "Sprinkler", 3
		case strings.Contains(line, "Smoke detector") && strings.Contains(line, "operates"):
			typ, label, idIdx = models.EventSmokeDetector, "Smoke detector", 4
		default:
			continue
		}

		fields := strings.Fields(line)
		if len(fields) <= idIdx {
			continue
		}
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			continue
		}
		events = append(events, models.SimulationEvent{
			Type:        typ,
			Name:        label + " " + strings.TrimRight(fields[idIdx], ",.:;"),
			Time:        float64(int64(t)),
			Description: strings.TrimSpace(line),
		})
	}
	return events
}
