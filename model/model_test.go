package model

import (
	"testing"

	"github.com/denismitr/roster/table"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "shift:12", Key(Shifts, 12))
	assert.Equal(t, "user:E100", Key(Users, "E100"))
}

func TestShift_AsRecord(t *testing.T) {
	s := Shift{ID: 7, UserID: "E100", Date: "2024-03-01", TimeIn: "09:00", TimeOut: "17:00", Location: "Warehouse"}

	assert.Equal(t, "7", s.Key())
	assert.Nil(t, s.Value("employeeName"))
	assert.Nil(t, s.Value("unknown"))
	assert.Len(t, table.Filter([]Shift{s}, "wareHOUSE"), 1)
	assert.Len(t, table.Filter([]Shift{s}, "e100"), 1)
}

func TestUser_PasswordIsNotSearchable(t *testing.T) {
	secret := "hunter2"
	u := User{ID: "E100", Name: "Ann", Role: RoleEmployee, Password: &secret}

	assert.Empty(t, table.Filter([]User{u}, "hunter"))
	assert.Len(t, table.Filter([]User{u}, "employee"), 1)
}

func TestNote_Kind(t *testing.T) {
	assert.Equal(t, "Manager Note", Note{IsManagerNote: true}.Kind())
	assert.Equal(t, "Personal Note", Note{}.Kind())
	assert.Equal(t, true, Note{IsManagerNote: true}.Value("is_manager_note"))
	assert.Equal(t, "Personal Note", Note{}.Value("kind"))

	notes := []Note{{ID: 1, Content: "bring keys"}, {ID: 2, Content: "late again", IsManagerNote: true}}
	assert.Len(t, table.Filter(notes, "manager"), 1)
}
