package dashboard

import (
	"context"
	"io"

	"github.com/denismitr/roster"
	"github.com/denismitr/roster/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalidFixtures = errors.New("invalid fixtures")

// Fixtures is a YAML document describing a whole roster.
type Fixtures struct {
	Users         []model.User         `yaml:"users"`
	Shifts        []model.Shift        `yaml:"shifts"`
	Notes         []model.Note         `yaml:"notes"`
	Announcements []model.Announcement `yaml:"announcements"`
}

func LoadFixtures(r io.Reader) (*Fixtures, error) {
	var f Fixtures

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(ErrInvalidFixtures, "%v", err)
	}

	for _, u := range f.Users {
		if u.ID == "" || !u.Role.Valid() {
			return nil, errors.Wrapf(ErrInvalidFixtures, "user %q has role %q", u.ID, u.Role)
		}
	}

	for _, s := range f.Shifts {
		if s.ID < 1 {
			return nil, errors.Wrapf(ErrInvalidFixtures, "shift of %q has no id", s.UserID)
		}
	}

	for _, n := range f.Notes {
		if n.ID < 1 {
			return nil, errors.Wrapf(ErrInvalidFixtures, "note of %q has no id", n.UserID)
		}
	}

	return &f, nil
}

// Seed writes every fixture into db in one transaction, replacing
// documents under the same keys.
func Seed(ctx context.Context, db *roster.DB, f *Fixtures) error {
	return db.Update(ctx, func(tx *roster.Tx) error {
		for _, u := range f.Users {
			if err := tx.InsertOrReplace(model.Key(model.Users, u.ID), u); err != nil {
				return err
			}
		}

		for _, s := range f.Shifts {
			if err := tx.InsertOrReplace(model.Key(model.Shifts, s.ID), s); err != nil {
				return err
			}
		}

		for _, n := range f.Notes {
			if err := tx.InsertOrReplace(model.Key(model.Notes, n.ID), n); err != nil {
				return err
			}
		}

		for _, a := range f.Announcements {
			if err := tx.InsertOrReplace(model.Key(model.Announcements, a.ID), a); err != nil {
				return err
			}
		}

		return nil
	})
}
