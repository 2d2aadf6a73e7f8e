// Package dashboard implements the login flow and the employee and manager
// dashboards on top of the roster store.
package dashboard

import (
	"context"
	"time"

	"github.com/denismitr/roster"
	"github.com/denismitr/roster/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must look like yyyy-mm-dd")

type Config struct {
	Logger *zap.Logger
	Now    func() time.Time

	AdminID               string
	AdminManagerPassword  string
	AdminEmployeePassword string
}

func (cfg *Config) applyTo() {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if cfg.AdminID == "" {
		cfg.AdminID = "admin"
	}

	if cfg.AdminManagerPassword == "" {
		cfg.AdminManagerPassword = "admin"
	}

	if cfg.AdminEmployeePassword == "" {
		cfg.AdminEmployeePassword = "admin123"
	}
}

func resolveConfig(cfgs []*Config) *Config {
	cfg := &Config{}
	if len(cfgs) > 0 && cfgs[0] != nil {
		c := *cfgs[0]
		cfg = &c
	}

	cfg.applyTo()
	return cfg
}

func parseDate(date string) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidDate, "%q", date)
	}
	return d, nil
}

// monthRange returns the first and last day of the month d falls in.
func monthRange(d time.Time) (string, string) {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(DateLayout), last.Format(DateLayout)
}

func findShifts(ctx context.Context, tx *roster.Tx, filters ...roster.Filter) ([]model.Shift, error) {
	var docs []roster.Document
	if err := tx.Find(ctx, roster.Q().Prefix(model.Shifts).Where(filters...), &docs); err != nil {
		return nil, errors.Wrap(err, "could not scan shifts")
	}

	shifts := make([]model.Shift, len(docs))
	for i := range docs {
		if err := docs[i].Unmarshal(&shifts[i]); err != nil {
			return nil, err
		}
	}

	return shifts, nil
}

func findNotes(ctx context.Context, tx *roster.Tx, filters ...roster.Filter) ([]model.Note, error) {
	var docs []roster.Document
	if err := tx.Find(ctx, roster.Q().Prefix(model.Notes).Where(filters...), &docs); err != nil {
		return nil, errors.Wrap(err, "could not scan notes")
	}

	notes := make([]model.Note, len(docs))
	for i := range docs {
		if err := docs[i].Unmarshal(&notes[i]); err != nil {
			return nil, err
		}
	}

	return notes, nil
}

func findUsers(ctx context.Context, tx *roster.Tx, filters ...roster.Filter) ([]model.User, error) {
	var docs []roster.Document
	if err := tx.Find(ctx, roster.Q().Prefix(model.Users).Where(filters...), &docs); err != nil {
		return nil, errors.Wrap(err, "could not scan users")
	}

	users := make([]model.User, len(docs))
	for i := range docs {
		if err := docs[i].Unmarshal(&users[i]); err != nil {
			return nil, err
		}
	}

	return users, nil
}

func findAnnouncements(ctx context.Context, tx *roster.Tx) ([]model.Announcement, error) {
	var docs []roster.Document
	if err := tx.Find(ctx, roster.Q().Prefix(model.Announcements), &docs); err != nil {
		return nil, errors.Wrap(err, "could not scan announcements")
	}

	out := make([]model.Announcement, len(docs))
	for i := range docs {
		if err := docs[i].Unmarshal(&out[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func getUser(tx *roster.Tx, id string) (*model.User, error) {
	doc, err := tx.Get(model.Key(model.Users, id))
	if err != nil {
		return nil, err
	}

	var u model.User
	if err := doc.Unmarshal(&u); err != nil {
		return nil, err
	}

	return &u, nil
}

// userNames maps user ids to display names.
func userNames(ctx context.Context, tx *roster.Tx) (map[string]string, error) {
	users, err := findUsers(ctx, tx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	return names, nil
}
