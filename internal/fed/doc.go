// Package fed integrates Fractional Effective Dose along an evacuation path.
//
// A path is an ordered list of rooms with the times at which the occupant moves
// from one room to the next. Each room's zone-model series is sliced to its
// occupancy window and walked pair by pair; every step classifies the monitoring
// height against the smoke layer, computes a dose increment and adds it to a
// running total that saturates at 1.
//
// Two dose models are provided: ComputeCO (carbon monoxide with CO2
// hyperventilation and hypoxia) and ComputeThermal (convective plus radiative
// heat). Stores are read-only, so any number of paths may be integrated
// concurrently over the same store.
package fed
