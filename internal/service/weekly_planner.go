package service

import (
	"errors"
	"sort"
	"time"

	"medivuno-api/config"
	"medivuno-api/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeFormat   = errors.New("invalid time format, use HH:MM")
	ErrStartNotBeforeEnd   = errors.New("start time must be before end time")
	ErrBreakIncomplete     = errors.New("break requires both start and end")
	ErrBreakOutsideWindow  = errors.New("break must fall within working hours")
	ErrEmptyWeeklyTemplate = errors.New("weekly template has no days configured")
)

// DayHours is one weekday record of a weekly recurring-hours template.
// Weekday follows time.Weekday numbering (0 = Sunday). Times are "HH:MM".
type DayHours struct {
	Weekday    int    `json:"weekday"`
	Start      string `json:"start"`
	End        string `json:"end"`
	BreakStart string `json:"break_start,omitempty"`
	BreakEnd   string `json:"break_end,omitempty"`
}

// DefaultWeeklyTemplate returns the business-hours template the weekly form
// is pre-seeded with: Monday through Friday, 08:00-18:00 with a 12:00-13:00
// break.
func DefaultWeeklyTemplate() map[int]DayHours {
	template := make(map[int]DayHours, 5)
	for day := int(time.Monday); day <= int(time.Friday); day++ {
		template[day] = DayHours{
			Start:      "08:00",
			End:        "18:00",
			BreakStart: "12:00",
			BreakEnd:   "13:00",
		}
	}
	return template
}

// FlattenTemplate turns a weekday-keyed template into an ordered list of
// per-day records. Each record carries the template's fields verbatim; the
// Weekday field is taken from the map key.
func FlattenTemplate(template map[int]DayHours) []DayHours {
	records := make([]DayHours, 0, len(template))
	for weekday, hours := range template {
		hours.Weekday = weekday
		records = append(records, hours)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Weekday < records[j].Weekday
	})
	return records
}

// WeeklyPlanner materializes weekly recurring-hours templates into concrete
// dated availability slots.
type WeeklyPlanner struct {
	slotDuration time.Duration
	weeksAhead   int
}

func NewWeeklyPlanner(cfg config.AvailabilityConfig) *WeeklyPlanner {
	return &WeeklyPlanner{
		slotDuration: cfg.SlotDuration,
		weeksAhead:   cfg.WeeksAhead,
	}
}

func parseClock(value string) (int, int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, ErrInvalidTimeFormat
	}
	return t.Hour(), t.Minute(), nil
}

// Validate checks one weekday record: parseable times, start before end, and
// an optional break that is complete and inside the working window.
func (p *WeeklyPlanner) Validate(record DayHours) error {
	startH, startM, err := parseClock(record.Start)
	if err != nil {
		return err
	}
	endH, endM, err := parseClock(record.End)
	if err != nil {
		return err
	}

	start := startH*60 + startM
	end := endH*60 + endM
	if start >= end {
		return ErrStartNotBeforeEnd
	}

	hasBreakStart := record.BreakStart != ""
	hasBreakEnd := record.BreakEnd != ""
	if hasBreakStart != hasBreakEnd {
		return ErrBreakIncomplete
	}
	if !hasBreakStart {
		return nil
	}

	breakStartH, breakStartM, err := parseClock(record.BreakStart)
	if err != nil {
		return err
	}
	breakEndH, breakEndM, err := parseClock(record.BreakEnd)
	if err != nil {
		return err
	}

	breakStart := breakStartH*60 + breakStartM
	breakEnd := breakEndH*60 + breakEndM
	if breakStart >= breakEnd {
		return ErrStartNotBeforeEnd
	}
	if breakStart < start || breakEnd > end {
		return ErrBreakOutsideWindow
	}

	return nil
}

// Expand materializes the records into dated slots for the planner's
// configured horizon, starting from the first occurrence of each weekday at
// or after from. Slots overlapping a record's break window are skipped, as
// are slots that would start before from.
func (p *WeeklyPlanner) Expand(doctorID uuid.UUID, records []DayHours, from time.Time) ([]entity.AvailabilitySlot, error) {
	if len(records) == 0 {
		return nil, ErrEmptyWeeklyTemplate
	}

	var slots []entity.AvailabilitySlot
	for _, record := range records {
		if err := p.Validate(record); err != nil {
			return nil, err
		}

		startH, startM, _ := parseClock(record.Start)
		endH, endM, _ := parseClock(record.End)

		var breakStart, breakEnd time.Duration
		hasBreak := record.BreakStart != ""
		if hasBreak {
			bsH, bsM, _ := parseClock(record.BreakStart)
			beH, beM, _ := parseClock(record.BreakEnd)
			breakStart = time.Duration(bsH)*time.Hour + time.Duration(bsM)*time.Minute
			breakEnd = time.Duration(beH)*time.Hour + time.Duration(beM)*time.Minute
		}

		daysUntil := (record.Weekday - int(from.Weekday()) + 7) % 7
		firstDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location()).
			AddDate(0, 0, daysUntil)

		for week := 0; week < p.weeksAhead; week++ {
			day := firstDay.AddDate(0, 0, 7*week)
			dayStart := day.Add(time.Duration(startH)*time.Hour + time.Duration(startM)*time.Minute)
			dayEnd := day.Add(time.Duration(endH)*time.Hour + time.Duration(endM)*time.Minute)

			for slotStart := dayStart; !slotStart.Add(p.slotDuration).After(dayEnd); slotStart = slotStart.Add(p.slotDuration) {
				slotEnd := slotStart.Add(p.slotDuration)
				if slotStart.Before(from) {
					continue
				}
				if hasBreak {
					sinceMidnightStart := slotStart.Sub(day)
					sinceMidnightEnd := slotEnd.Sub(day)
					if sinceMidnightStart < breakEnd && breakStart < sinceMidnightEnd {
						continue
					}
				}
				slots = append(slots, entity.AvailabilitySlot{
					DoctorID:  doctorID,
					StartTime: slotStart,
					EndTime:   slotEnd,
				})
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
	return slots, nil
}
