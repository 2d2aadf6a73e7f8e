package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/denismitr/roster/dashboard"
	"github.com/denismitr/roster/internal/render"
	"github.com/denismitr/roster/model"
	"github.com/denismitr/roster/session"
	"github.com/denismitr/roster/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixturesPath string
	date         string
	search       string
	sortKey      string
	descending   bool
	page         int
	timeFilter   string
	location     string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users, shifts, notes and announcements from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		f, err := os.Open(fixturesPath)
		if err != nil {
			return err
		}
		defer f.Close()

		fixtures, err := dashboard.LoadFixtures(f)
		if err != nil {
			return err
		}

		db, closer, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(closer, &err)

		if err := dashboard.Seed(cmd.Context(), db, fixtures); err != nil {
			return err
		}

		logger.Info("database seeded",
			zap.Int("users", len(fixtures.Users)),
			zap.Int("shifts", len(fixtures.Shifts)),
			zap.Int("notes", len(fixtures.Notes)),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d documents into %s\n", db.Count(), dbPath)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login [user-id] [password]",
	Short: "Check credentials and report which dashboard the user gets",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		db, closer, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(closer, &err)

		store, err := session.NewCacheStore(&session.Config{Logger: logger})
		if err != nil {
			return err
		}

		auth := dashboard.NewAuth(db, store, &dashboard.Config{Logger: logger})
		s, err := auth.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "welcome %s, opening the %s dashboard (session %s)\n", s.User.Name, s.Role, s.Token)
		return auth.Logout(cmd.Context(), s.Token)
	},
}

var employeeCmd = &cobra.Command{
	Use:   "employee [user-id]",
	Short: "Show an employee's shifts, calendar, notes and announcements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		db, closer, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(closer, &err)

		day, err := dashboard.NewEmployee(db, &dashboard.Config{Logger: logger}).Day(cmd.Context(), args[0], date)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		shifts := tableFromFlags(table.New(table.Columns(
			"date", "Date",
			"time_in", "Time In",
			"time_out", "Time Out",
			"location", "Location",
		), day.Shifts, &table.Config{PageSize: pageSize}))
		fmt.Fprintln(out, render.View("Shifts on "+day.Date, shifts.Derive()))

		fmt.Fprintln(out, "\nWorking days this month:")
		for _, d := range dashboard.WorkingDays(day.MonthShifts) {
			fmt.Fprintf(out, "  %s  %s\n", d.Date, d.Period)
		}

		printNotes(out, day.Notes)

		fmt.Fprintln(out, "\nAnnouncements:")
		for _, a := range day.Announcements {
			fmt.Fprintf(out, "  %s\n", a.Message)
		}

		return nil
	},
}

var managerCmd = &cobra.Command{
	Use:   "manager",
	Short: "Show every shift of a day with filters, location stats and notes",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		db, closer, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(closer, &err)

		day, err := dashboard.NewManager(db, &dashboard.Config{Logger: logger}).Day(cmd.Context(), date)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Time filter options: %s\n", strings.Join(dashboard.TimeOptions(day.Shifts), ", "))
		fmt.Fprintf(out, "Locations: %s\n\n", strings.Join(append([]string{dashboard.AllOption}, day.Locations...), ", "))

		shifts := dashboard.FilterByLocation(dashboard.FilterByTime(day.Shifts, timeFilter), location)
		c := tableFromFlags(dashboard.NewShiftTable(shifts, &table.Config{PageSize: pageSize}))
		c.OnRowActivated(func(s model.Shift) {
			logger.Debug("shift selected", zap.Int("id", s.ID))
		})
		fmt.Fprintln(out, render.View("Employee shifts on "+day.Date, c.Derive()))

		stats := table.New(table.Columns(
			"location", "Location",
			"count", "Employees",
			"percentage", "Share",
		), day.LocationStats, nil)
		fmt.Fprintln(out)
		fmt.Fprintln(out, render.View("Location statistics", stats.Derive()))

		printNotes(out, day.Notes)

		fmt.Fprintf(out, "\nGeneral message: %s\n", day.Announcement)
		return nil
	},
}

// tableFromFlags applies the search, sort and page flags in the order a
// user would click through them.
func tableFromFlags[T table.Record](c *table.Controller[T]) *table.Controller[T] {
	if search != "" {
		c.SetSearchTerm(search)
	}

	if sortKey != "" && c.ToggleSort(sortKey) && descending {
		c.ToggleSort(sortKey)
	}

	c.SetPage(page)
	return c
}

func printNotes(out io.Writer, notes []model.Note) {
	c := dashboard.NewNoteTable(notes, &table.Config{PageSize: pageSize})
	fmt.Fprintln(out)
	fmt.Fprintln(out, render.View("Notes", c.Derive()))
}

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Write personal and manager notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add [user-id] [text...]",
	Short: "Add a personal note for a day",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		db, closer, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(closer, &err)

		n, err := dashboard.NewEmployee(db, &dashboard.Config{Logger: logger}).
			AddNote(cmd.Context(), args[0], date, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "note #%d added\n", n.ID)
		return nil
	},
}

var noteManagerCmd = &cobra.Command{
	Use:   "manager [employee-id] [text...]",
	Short: "File a manager note about an employee",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveManagerNote(cmd, dashboard.NoteInput{
			EmployeeID: args[0],
			Date:       date,
			Content:    strings.Join(args[1:], " "),
		})
	},
}

var noteEditCmd = &cobra.Command{
	Use:   "edit [note-id] [employee-id] [text...]",
	Short: "Replace the text of a manager note",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Errorf("note id %q is not a number", args[0])
		}

		return saveManagerNote(cmd, dashboard.NoteInput{
			ID:         id,
			EmployeeID: args[1],
			Date:       date,
			Content:    strings.Join(args[2:], " "),
		})
	},
}

func saveManagerNote(cmd *cobra.Command, in dashboard.NoteInput) (err error) {
	db, closer, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(closer, &err)

	n, err := dashboard.NewManager(db, &dashboard.Config{Logger: logger}).SaveNote(cmd.Context(), in)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "note #%d saved for %s\n", n.ID, n.EmployeeName)
	return nil
}

var announceCmd = &cobra.Command{
	Use:   "announce [message...]",
	Short: "Replace the general message shown to employees",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		db, closer, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(closer, &err)

		if err := dashboard.NewManager(db, &dashboard.Config{Logger: logger}).
			UpdateAnnouncement(cmd.Context(), strings.Join(args, " ")); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Message updated successfully!")
		return nil
	},
}

func init() {
	today := time.Now().Format(dashboard.DateLayout)

	seedCmd.Flags().StringVarP(&fixturesPath, "file", "f", "fixtures.yaml", "YAML fixtures file")

	for _, c := range []*cobra.Command{employeeCmd, managerCmd, noteAddCmd, noteManagerCmd, noteEditCmd} {
		c.Flags().StringVar(&date, "date", today, "Day to show, yyyy-mm-dd")
	}

	for _, c := range []*cobra.Command{employeeCmd, managerCmd} {
		c.Flags().StringVar(&search, "search", "", "Only rows containing this text")
		c.Flags().StringVar(&sortKey, "sort", "", "Column key to sort by")
		c.Flags().BoolVar(&descending, "desc", false, "Sort descending")
		c.Flags().IntVar(&page, "page", 1, "Page to show")
	}

	managerCmd.Flags().StringVar(&timeFilter, "time", dashboard.AllOption, "Only shifts starting at this time")
	managerCmd.Flags().StringVar(&location, "location", dashboard.AllOption, "Only shifts at this location")

	noteCmd.AddCommand(noteAddCmd, noteManagerCmd, noteEditCmd)
}
