// Package model holds the scheduling records shared by the store, the
// dashboards and the table views.
package model

import (
	"strconv"

	"github.com/denismitr/roster/table"
)

// Collections, used as the first segment of store keys.
const (
	Users         = "user"
	Shifts        = "shift"
	Notes         = "note"
	Announcements = "announcement"
)

// GeneralAnnouncementID is the announcement managers edit from their dashboard.
const GeneralAnnouncementID = 1

func Key(collection string, id interface{}) string {
	return collection + ":" + table.Text(id)
}

type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleManager || r == RoleEmployee
}

type User struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Role     Role    `json:"role" yaml:"role"`
	Password *string `json:"password,omitempty" yaml:"password,omitempty"`
}

var userFields = []string{"id", "name", "role"}

func (u User) Key() string { return u.ID }

// Fields leaves the password out so it never shows up in searches.
func (u User) Fields() []string { return userFields }

func (u User) Value(field string) interface{} {
	switch field {
	case "id":
		return u.ID
	case "name":
		return u.Name
	case "role":
		return string(u.Role)
	}
	return nil
}

type Shift struct {
	ID           int    `json:"id" yaml:"id"`
	UserID       string `json:"user_id" yaml:"user_id"`
	Date         string `json:"date" yaml:"date"`
	TimeIn       string `json:"time_in" yaml:"time_in"`
	TimeOut      string `json:"time_out" yaml:"time_out"`
	Location     string `json:"location" yaml:"location"`
	EmployeeName string `json:"employeeName,omitempty" yaml:"-"`
}

var shiftFields = []string{"id", "user_id", "date", "time_in", "time_out", "location", "employeeName"}

func (s Shift) Key() string { return strconv.Itoa(s.ID) }

func (s Shift) Fields() []string { return shiftFields }

func (s Shift) Value(field string) interface{} {
	switch field {
	case "id":
		return s.ID
	case "user_id":
		return s.UserID
	case "date":
		return s.Date
	case "time_in":
		return s.TimeIn
	case "time_out":
		return s.TimeOut
	case "location":
		return s.Location
	case "employeeName":
		if s.EmployeeName == "" {
			return nil
		}
		return s.EmployeeName
	}
	return nil
}

type Note struct {
	ID            int    `json:"id" yaml:"id"`
	UserID        string `json:"user_id" yaml:"user_id"`
	Date          string `json:"date" yaml:"date"`
	Content       string `json:"content" yaml:"content"`
	IsManagerNote bool   `json:"is_manager_note" yaml:"is_manager_note"`
	EmployeeName  string `json:"employeeName,omitempty" yaml:"-"`
}

var noteFields = []string{"id", "user_id", "date", "content", "is_manager_note", "kind", "employeeName"}

func (n Note) Key() string { return strconv.Itoa(n.ID) }

func (n Note) Fields() []string { return noteFields }

func (n Note) Value(field string) interface{} {
	switch field {
	case "id":
		return n.ID
	case "user_id":
		return n.UserID
	case "date":
		return n.Date
	case "content":
		return n.Content
	case "is_manager_note":
		return n.IsManagerNote
	case "kind":
		return n.Kind()
	case "employeeName":
		if n.EmployeeName == "" {
			return nil
		}
		return n.EmployeeName
	}
	return nil
}

// Kind is the label shown next to a note.
func (n Note) Kind() string {
	if n.IsManagerNote {
		return "Manager Note"
	}
	return "Personal Note"
}

type Announcement struct {
	ID      int    `json:"id" yaml:"id"`
	Message string `json:"message" yaml:"message"`
}

func (a Announcement) Key() string { return strconv.Itoa(a.ID) }

func (a Announcement) Fields() []string { return []string{"id", "message"} }

func (a Announcement) Value(field string) interface{} {
	switch field {
	case "id":
		return a.ID
	case "message":
		return a.Message
	}
	return nil
}

// LocationStat is the share of a day's shifts worked at one location.
type LocationStat struct {
	Location   string `json:"location"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

func (ls LocationStat) Key() string { return ls.Location }

func (ls LocationStat) Fields() []string { return []string{"location", "count", "percentage"} }

func (ls LocationStat) Value(field string) interface{} {
	switch field {
	case "location":
		return ls.Location
	case "count":
		return ls.Count
	case "percentage":
		return ls.Percentage
	}
	return nil
}

var (
	_ table.Record = User{}
	_ table.Record = Shift{}
	_ table.Record = Note{}
	_ table.Record = Announcement{}
	_ table.Record = LocationStat{}
)
