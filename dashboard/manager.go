package dashboard

import (
	"context"
	"strings"

	"github.com/denismitr/roster"
	"github.com/denismitr/roster/model"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrNoteIncomplete = errors.New("a note needs an employee and some content")

const unknownEmployee = "Unknown"

// StaffMember is the part of a user a manager picks notes for.
type StaffMember struct {
	ID   string
	Name string
}

type ManagerDay struct {
	Date          string
	Employees     []StaffMember
	Shifts        []model.Shift
	Locations     []string
	LocationStats []model.LocationStat
	Notes         []model.Note
	Announcement  string
}

// NoteInput is a manager note being written. A non zero ID edits that note.
type NoteInput struct {
	ID         int
	EmployeeID string
	Date       string
	Content    string
}

type Manager struct {
	db  *roster.DB
	cfg *Config
}

func NewManager(db *roster.DB, cfgs ...*Config) *Manager {
	return &Manager{db: db, cfg: resolveConfig(cfgs)}
}

// Day collects the staff, every shift of date joined with employee names,
// location figures, the manager notes of the day about known users and the
// general announcement.
func (m *Manager) Day(ctx context.Context, date string) (*ManagerDay, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}

	day := &ManagerDay{Date: date}

	if err := m.db.View(ctx, func(tx *roster.Tx) error {
		employees, err := findUsers(ctx, tx, roster.Eq("role", model.RoleEmployee))
		if err != nil {
			return err
		}

		if err := copier.Copy(&day.Employees, &employees); err != nil {
			return errors.Wrap(err, "could not copy employees")
		}

		names, err := userNames(ctx, tx)
		if err != nil {
			return err
		}

		if day.Shifts, err = findShifts(ctx, tx, roster.Eq("date", date)); err != nil {
			return err
		}

		for i := range day.Shifts {
			day.Shifts[i].EmployeeName = nameOrUnknown(names, day.Shifts[i].UserID)
		}

		notes, err := findNotes(ctx, tx, roster.Eq("date", date), roster.Eq("is_manager_note", true))
		if err != nil {
			return err
		}

		// notes about users that no longer exist are not shown
		day.Notes = notes[:0]
		for _, n := range notes {
			if name, ok := names[n.UserID]; ok {
				n.EmployeeName = name
				day.Notes = append(day.Notes, n)
			}
		}

		doc, err := tx.Get(model.Key(model.Announcements, model.GeneralAnnouncementID))
		if err == nil {
			day.Announcement = doc.StringOrDefault("message", "")
		} else if !errors.Is(err, roster.ErrKeyDoesNotExist) {
			return err
		}

		return nil
	}); err != nil {
		return nil, errors.Wrapf(err, "could not load manager day %s", date)
	}

	day.Locations = Locations(day.Shifts)
	day.LocationStats = LocationStats(day.Shifts)

	return day, nil
}

func nameOrUnknown(names map[string]string, id string) string {
	if n := names[id]; n != "" {
		return n
	}
	return unknownEmployee
}

// SaveNote edits the content of an existing note when in.ID is set and
// otherwise files a new manager note about in.EmployeeID.
func (m *Manager) SaveNote(ctx context.Context, in NoteInput) (*model.Note, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.EmployeeID == "" || in.Content == "" {
		return nil, ErrNoteIncomplete
	}

	var n model.Note
	if err := m.db.Update(ctx, func(tx *roster.Tx) error {
		if in.ID != 0 {
			key := model.Key(model.Notes, in.ID)
			if err := tx.Patch(key, roster.M{"content": in.Content}); err != nil {
				return err
			}

			doc, err := tx.Get(key)
			if err != nil {
				return err
			}

			return doc.Unmarshal(&n)
		}

		if _, err := parseDate(in.Date); err != nil {
			return err
		}

		id, err := tx.NextID(model.Notes)
		if err != nil {
			return err
		}

		n = model.Note{ID: id, UserID: in.EmployeeID, Date: in.Date, Content: in.Content, IsManagerNote: true}
		return tx.Insert(model.Key(model.Notes, id), n)
	}); err != nil {
		return nil, errors.Wrap(err, "could not save note")
	}

	if err := m.db.View(ctx, func(tx *roster.Tx) error {
		u, err := getUser(tx, n.UserID)
		if err == nil {
			n.EmployeeName = u.Name
		} else if errors.Is(err, roster.ErrKeyDoesNotExist) {
			n.EmployeeName = unknownEmployee
		} else {
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}

	m.cfg.Logger.Debug("manager note saved", zap.Int("id", n.ID), zap.String("employee", n.UserID))
	return &n, nil
}

// UpdateAnnouncement replaces the general announcement shown to employees.
func (m *Manager) UpdateAnnouncement(ctx context.Context, message string) error {
	a := model.Announcement{ID: model.GeneralAnnouncementID, Message: message}

	if err := m.db.Update(ctx, func(tx *roster.Tx) error {
		return tx.InsertOrReplace(model.Key(model.Announcements, a.ID), a)
	}); err != nil {
		return errors.Wrap(err, "could not update announcement")
	}

	m.cfg.Logger.Info("announcement updated")
	return nil
}
