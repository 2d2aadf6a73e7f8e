package dashboard

import (
	"context"

	"github.com/denismitr/roster"
	"github.com/denismitr/roster/model"
	"github.com/denismitr/roster/session"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrUserNotFound = errors.New("user not found")
var ErrInvalidPassword = errors.New("invalid password")

// Auth logs users in against the users collection. A user's password is
// their own id, and a built in admin account can open either dashboard.
type Auth struct {
	db       *roster.DB
	sessions session.Store
	cfg      *Config
}

func NewAuth(db *roster.DB, sessions session.Store, cfgs ...*Config) *Auth {
	return &Auth{db: db, sessions: sessions, cfg: resolveConfig(cfgs)}
}

// Login checks the credentials and opens a session whose role decides
// which dashboard the user lands on.
func (a *Auth) Login(ctx context.Context, id, password string) (*session.Session, error) {
	if s := a.adminSession(id, password); s != nil {
		return a.open(ctx, s)
	}

	var u *model.User
	if err := a.db.View(ctx, func(tx *roster.Tx) error {
		found, err := getUser(tx, id)
		if err != nil {
			return err
		}

		u = found
		return nil
	}); err != nil {
		if errors.Is(err, roster.ErrKeyDoesNotExist) {
			return nil, errors.Wrapf(ErrUserNotFound, "id %s", id)
		}
		return nil, err
	}

	if password != id {
		a.cfg.Logger.Debug("login rejected", zap.String("user", id))
		return nil, errors.Wrapf(ErrInvalidPassword, "id %s", id)
	}

	role := model.RoleEmployee
	if u.Role == model.RoleManager {
		role = model.RoleManager
	}

	return a.open(ctx, session.New(*u, role, a.cfg.Now()))
}

func (a *Auth) adminSession(id, password string) *session.Session {
	if id != a.cfg.AdminID {
		return nil
	}

	var role model.Role
	switch password {
	case a.cfg.AdminManagerPassword:
		role = model.RoleManager
	case a.cfg.AdminEmployeePassword:
		role = model.RoleEmployee
	default:
		return nil
	}

	return session.New(model.User{ID: a.cfg.AdminID, Name: "Administrator", Role: role}, role, a.cfg.Now())
}

func (a *Auth) open(ctx context.Context, s *session.Session) (*session.Session, error) {
	if err := a.sessions.Put(ctx, s); err != nil {
		return nil, err
	}

	a.cfg.Logger.Info("user logged in", zap.String("user", s.User.ID), zap.String("role", string(s.Role)))
	return s, nil
}

func (a *Auth) Current(ctx context.Context, token string) (*session.Session, error) {
	return a.sessions.Get(ctx, token)
}

func (a *Auth) Logout(ctx context.Context, token string) error {
	if err := a.sessions.Delete(ctx, token); err != nil {
		return err
	}

	a.cfg.Logger.Info("user logged out")
	return nil
}
