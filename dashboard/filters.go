package dashboard

import (
	"fmt"
	"sort"

	"github.com/denismitr/roster/model"
	"github.com/denismitr/roster/table"
)

// AllOption disables a time or location filter.
const AllOption = "all"

// ShiftColumns are the columns of the manager's shifts table.
var ShiftColumns = table.Columns(
	"user_id", "Employee ID",
	"employeeName", "Name",
	"location", "Location",
	"time_in", "Time In",
	"time_out", "Time Out",
)

// NoteColumns are the columns used when notes are listed as a table.
var NoteColumns = table.Columns(
	"id", "#",
	"kind", "Kind",
	"employeeName", "Employee",
	"content", "Note",
)

func NewShiftTable(shifts []model.Shift, cfg *table.Config) *table.Controller[model.Shift] {
	return table.New(ShiftColumns, shifts, cfg)
}

func NewNoteTable(notes []model.Note, cfg *table.Config) *table.Controller[model.Note] {
	return table.New(NoteColumns, notes, cfg)
}

// TimeOptions lists AllOption followed by the distinct start times of
// shifts in ascending order.
func TimeOptions(shifts []model.Shift) []string {
	seen := make(map[string]bool)
	var times []string

	for _, s := range shifts {
		if !seen[s.TimeIn] {
			seen[s.TimeIn] = true
			times = append(times, s.TimeIn)
		}
	}

	sort.Strings(times)
	return append([]string{AllOption}, times...)
}

func FilterByTime(shifts []model.Shift, timeIn string) []model.Shift {
	return filterShifts(shifts, timeIn, func(s model.Shift) string { return s.TimeIn })
}

func FilterByLocation(shifts []model.Shift, location string) []model.Shift {
	return filterShifts(shifts, location, func(s model.Shift) string { return s.Location })
}

func filterShifts(shifts []model.Shift, want string, field func(model.Shift) string) []model.Shift {
	out := make([]model.Shift, 0, len(shifts))
	for _, s := range shifts {
		if want == AllOption || want == "" || field(s) == want {
			out = append(out, s)
		}
	}
	return out
}

// Locations lists the distinct locations in order of first appearance.
func Locations(shifts []model.Shift) []string {
	seen := make(map[string]bool)
	locations := make([]string, 0)

	for _, s := range shifts {
		if !seen[s.Location] {
			seen[s.Location] = true
			locations = append(locations, s.Location)
		}
	}

	return locations
}

// LocationStats counts shifts per location with the share of the total
// formatted to one decimal place.
func LocationStats(shifts []model.Shift) []model.LocationStat {
	counts := make(map[string]int)
	for _, s := range shifts {
		counts[s.Location]++
	}

	locations := Locations(shifts)
	stats := make([]model.LocationStat, 0, len(locations))
	for _, l := range locations {
		stats = append(stats, model.LocationStat{
			Location:   l,
			Count:      counts[l],
			Percentage: fmt.Sprintf("%.1f%%", float64(counts[l])/float64(len(shifts))*100),
		})
	}

	return stats
}
