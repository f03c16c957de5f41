package models

import "strings"

// Variable is one results column of a room, e.g. "HRR (kW)" or "Visibility (m)".
type Variable struct {
	Name   string    `json:"name"` // header as written in the workbook
	Times  []float64 `json:"times"`
	Values []float64 `json:"values"` // NaN where the cell was empty
}

// RoomVariables are the columns of a room sheet that Sample does not hold, in sheet order.
type RoomVariables []Variable

// VariableKey folds case and whitespace, so "CO Lower(ppm)" and "co lower (ppm)" match.
func VariableKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

// Find looks a variable up by name, ignoring case and whitespace.
func (rv RoomVariables) Find(name string) (Variable, bool) {
	key := VariableKey(name)
	for _, v := range rv {
		if VariableKey(v.Name) == key {
			return v, true
		}
	}
	return Variable{}, false
}

func (rv RoomVariables) Names() []string {
	out := make([]string, len(rv))
	for i, v := range rv {
		out[i] = v.Name
	}
	return out
}
