package dashboard

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/denismitr/roster"
	"github.com/denismitr/roster/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrEmptyNote = errors.New("note is empty")

type Period string

const (
	Morning   Period = "morning"
	Afternoon Period = "afternoon"
	Evening   Period = "evening"
)

// ShiftPeriod classifies a shift by the hour it starts. Times that do not
// start with an hour count as evening.
func ShiftPeriod(timeIn string) Period {
	h, err := strconv.Atoi(strings.SplitN(timeIn, ":", 2)[0])
	if err != nil {
		return Evening
	}

	switch {
	case h < 12:
		return Morning
	case h < 17:
		return Afternoon
	default:
		return Evening
	}
}

type EmployeeDay struct {
	Date          string
	Shifts        []model.Shift
	MonthShifts   []model.Shift
	Notes         []model.Note
	Announcements []model.Announcement
}

// CalendarDay marks a working day with the period of its first shift.
type CalendarDay struct {
	Date   string
	Period Period
}

type Employee struct {
	db  *roster.DB
	cfg *Config
}

func NewEmployee(db *roster.DB, cfgs ...*Config) *Employee {
	return &Employee{db: db, cfg: resolveConfig(cfgs)}
}

// Day collects what an employee sees for date: their shifts that day and
// that month, their own notes plus manager notes for the day, and every
// announcement.
func (e *Employee) Day(ctx context.Context, userID, date string) (*EmployeeDay, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	from, to := monthRange(d)
	day := &EmployeeDay{Date: date}

	if err := e.db.View(ctx, func(tx *roster.Tx) error {
		mine := roster.Eq("user_id", userID)

		if day.MonthShifts, err = findShifts(ctx, tx, mine, roster.Between("date", from, to)); err != nil {
			return err
		}

		if day.Shifts, err = findShifts(ctx, tx, mine, roster.Eq("date", date)); err != nil {
			return err
		}

		visible := roster.AnyOf(mine, roster.Eq("is_manager_note", true))
		if day.Notes, err = findNotes(ctx, tx, roster.Eq("date", date), visible); err != nil {
			return err
		}

		day.Announcements, err = findAnnouncements(ctx, tx)
		return err
	}); err != nil {
		return nil, errors.Wrapf(err, "could not load day %s of %s", date, userID)
	}

	return day, nil
}

// Calendar lists the working days of the month date falls in.
func (e *Employee) Calendar(ctx context.Context, userID, date string) ([]CalendarDay, error) {
	day, err := e.Day(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	return WorkingDays(day.MonthShifts), nil
}

// WorkingDays marks each date of shifts with the period of its first shift,
// in date order.
func WorkingDays(shifts []model.Shift) []CalendarDay {
	seen := make(map[string]bool)
	days := make([]CalendarDay, 0, len(shifts))

	for _, s := range shifts {
		if seen[s.Date] {
			continue
		}

		seen[s.Date] = true
		days = append(days, CalendarDay{Date: s.Date, Period: ShiftPeriod(s.TimeIn)})
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// AddNote stores a personal note of userID for date.
func (e *Employee) AddNote(ctx context.Context, userID, date, content string) (*model.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyNote
	}

	if _, err := parseDate(date); err != nil {
		return nil, err
	}

	n := &model.Note{UserID: userID, Date: date, Content: content}
	if err := e.db.Update(ctx, func(tx *roster.Tx) error {
		id, err := tx.NextID(model.Notes)
		if err != nil {
			return err
		}

		n.ID = id
		return tx.Insert(model.Key(model.Notes, id), n)
	}); err != nil {
		return nil, errors.Wrap(err, "could not add note")
	}

	e.cfg.Logger.Debug("note added", zap.Int("id", n.ID), zap.String("user", userID))
	return n, nil
}
