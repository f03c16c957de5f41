package fed

import (
	"slices"
	"sort"

	"tenability/internal/models"
)

// EnsureSample returns rs with a sample at exactly t. An existing sample is left
// alone; otherwise one is inserted and interpolated linearly in time between its
// neighbours. Outside the observed range nothing is extrapolated and the inserted
// sample is models.Undefined(t). rs must be a working copy.
func EnsureSample(rs models.RoomSeries, t float64) models.RoomSeries {
	i := sort.Search(len(rs), func(i int) bool { return rs[i].Time >= t })
	if i < len(rs) && rs[i].Time == t {
		return rs
	}
	s := models.Undefined(t)
	if i > 0 && i < len(rs) {
		s = models.Lerp(rs[i-1], rs[i], t)
	}
	return slices.Insert(rs, i, s)
}

// inRange reports whether t lies within the observed times of rs.
func inRange(rs models.RoomSeries, t float64) bool {
	return len(rs) > 0 && t >= rs[0].Time && t <= rs[len(rs)-1].Time
}

// window returns the samples with from <= time <= to.
func window(rs models.RoomSeries, from, to float64) models.RoomSeries {
	lo := sort.Search(len(rs), func(i int) bool { return rs[i].Time >= from })
	hi := sort.Search(len(rs), func(i int) bool { return rs[i].Time > to })
	if lo >= hi {
		return nil
	}
	return rs[lo:hi]
}
