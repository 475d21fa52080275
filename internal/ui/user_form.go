package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"github.com/lumenworks/chanhub/cli/internal/api"
	"github.com/lumenworks/chanhub/cli/internal/ui/components"
)

const (
	userFieldName = iota
	userFieldUsername
	userFieldEmployeeNo
	userFieldContact
	userFieldActive
	userFieldDepartments
	userFieldTeams
	userFieldCount
)

// userDraft is the validated shape of the user form. Only the username is
// mandatory; the rest of the profile can be filled in later.
type userDraft struct {
	Username string `validate:"required"`
}

func (d userDraft) Validate() map[string]string {
	err := draftValidator.Struct(d)
	if err == nil {
		return nil
	}
	fieldErrs := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for range verrs {
			fieldErrs["Username"] = "Username is required"
		}
	}
	return fieldErrs
}

// userForm holds the add/edit form state for the users screen.
type userForm struct {
	mode   formMode
	userID int

	fields []formField
	focus  int
	active bool

	departments  []api.Department
	teams        []api.Team
	selectedDept map[int]bool
	selectedTeam map[int]bool
	deptIdx      int
	teamIdx      int

	fieldErrs  map[string]string
	submitting bool
}

func newUserForm() userForm {
	return userForm{
		fields: []formField{
			{label: "Name"},
			{label: "Username"},
			{label: "Employee No"},
			{label: "Contact"},
		},
		selectedDept: map[int]bool{},
		selectedTeam: map[int]bool{},
		fieldErrs:    map[string]string{},
	}
}

func (f *userForm) reset(mode formMode) {
	f.mode = mode
	f.userID = 0
	f.focus = 0
	f.active = true
	f.selectedDept = map[int]bool{}
	f.selectedTeam = map[int]bool{}
	f.deptIdx = 0
	f.teamIdx = 0
	f.fieldErrs = map[string]string{}
	f.submitting = false
	for i := range f.fields {
		f.fields[i].value = ""
	}
}

// loadUser fills the form from an existing user for editing.
func (f *userForm) loadUser(u api.User) {
	f.reset(formModeEdit)
	f.userID = u.ID
	f.fields[userFieldName].value = u.Name
	f.fields[userFieldUsername].value = u.Username
	f.fields[userFieldEmployeeNo].value = u.EmployeeNo
	f.fields[userFieldContact].value = u.Contact
	f.active = u.IsActive
	for _, d := range u.Departments {
		f.selectedDept[d.ID] = true
	}
	for _, t := range u.Teams {
		f.selectedTeam[t.ID] = true
	}
}

// setOptions installs the department and team choices, derived from the
// groups seen across all loaded users.
func (f *userForm) setOptions(departments []api.Department, teams []api.Team) {
	f.departments = departments
	f.teams = teams
	if f.deptIdx >= len(departments) {
		f.deptIdx = 0
	}
	if f.teamIdx >= len(teams) {
		f.teamIdx = 0
	}
}

func (f userForm) draft() userDraft {
	return userDraft{
		Username: strings.TrimSpace(f.fields[userFieldUsername].value),
	}
}

func (f userForm) input() api.UserInput {
	var deptIDs, teamIDs []int
	for _, d := range f.departments {
		if f.selectedDept[d.ID] {
			deptIDs = append(deptIDs, d.ID)
		}
	}
	for _, t := range f.teams {
		if f.selectedTeam[t.ID] {
			teamIDs = append(teamIDs, t.ID)
		}
	}
	return api.UserInput{
		Name:          strings.TrimSpace(f.fields[userFieldName].value),
		Username:      strings.TrimSpace(f.fields[userFieldUsername].value),
		EmployeeNo:    strings.TrimSpace(f.fields[userFieldEmployeeNo].value),
		Contact:       strings.TrimSpace(f.fields[userFieldContact].value),
		IsActive:      f.active,
		DepartmentIDs: deptIDs,
		TeamIDs:       teamIDs,
	}
}

// handleKeys mutates the form and returns a submit command when the user
// saves a valid draft. The bool reports whether the form was closed.
func (f *userForm) handleKeys(msg tea.KeyMsg, client *api.Client) (tea.Cmd, bool) {
	if f.submitting {
		return nil, false
	}

	switch {
	case isBack(msg):
		return nil, true
	case isDown(msg):
		f.focus = (f.focus + 1) % userFieldCount
		return nil, false
	case isUp(msg):
		f.focus = (f.focus - 1 + userFieldCount) % userFieldCount
		return nil, false
	case isKey(msg, "ctrl+s"):
		return f.submit(client), false
	}

	switch f.focus {
	case userFieldActive:
		if isSpace(msg) || isKey(msg, "left", "right") {
			f.active = !f.active
		}
	case userFieldDepartments:
		f.handleMultiSelect(msg, len(f.departments), &f.deptIdx, func(i int) {
			id := f.departments[i].ID
			f.selectedDept[id] = !f.selectedDept[id]
		})
	case userFieldTeams:
		f.handleMultiSelect(msg, len(f.teams), &f.teamIdx, func(i int) {
			id := f.teams[i].ID
			f.selectedTeam[id] = !f.selectedTeam[id]
		})
	default:
		switch {
		case isKey(msg, "backspace", "delete"):
			field := &f.fields[f.focus]
			if field.value != "" {
				field.value = dropLastRune(field.value)
				f.clearFieldErr()
			}
		case isKey(msg, "cmd+backspace", "cmd+delete", "ctrl+u"):
			f.fields[f.focus].value = ""
			f.clearFieldErr()
		default:
			ch := msg.String()
			if len(ch) == 1 || ch == " " {
				f.fields[f.focus].value += ch
				f.clearFieldErr()
			}
		}
	}
	return nil, false
}

func (f *userForm) clearFieldErr() {
	if f.focus == userFieldUsername {
		delete(f.fieldErrs, "Username")
	}
}

func (f *userForm) handleMultiSelect(msg tea.KeyMsg, count int, idx *int, toggle func(int)) {
	if count == 0 {
		return
	}
	switch {
	case isKey(msg, "left"):
		*idx = (*idx - 1 + count) % count
	case isKey(msg, "right"):
		*idx = (*idx + 1) % count
	case isSpace(msg):
		toggle(*idx)
	}
}

func (f *userForm) submit(client *api.Client) tea.Cmd {
	draft := f.draft()
	if errs := draft.Validate(); len(errs) > 0 {
		f.fieldErrs = errs
		return nil
	}
	f.fieldErrs = map[string]string{}
	f.submitting = true

	mode := f.mode
	userID := f.userID
	input := f.input()
	return func() tea.Msg {
		if mode == formModeEdit {
			user, message, err := client.UpdateUser(userID, input)
			if err != nil {
				return errMsg{err: err, tab: tabUsers}
			}
			return userSavedMsg{mode: mode, user: *user, message: message}
		}
		user, message, err := client.CreateUser(input)
		if err != nil {
			return errMsg{err: err, tab: tabUsers}
		}
		return userSavedMsg{mode: mode, user: *user, message: message}
	}
}

func (f userForm) title() string {
	if f.mode == formModeEdit {
		return "Edit User"
	}
	return "Add User"
}

func (f userForm) render(width int) string {
	var b strings.Builder

	for i := 0; i < userFieldCount; i++ {
		switch i {
		case userFieldActive:
			value := "[ ] inactive"
			if f.active {
				value = "[x] active"
			}
			f.renderOptionRow(&b, i, "Status", value)
		case userFieldDepartments:
			f.renderOptionRow(&b, i, "Departments", f.renderDeptOptions())
		case userFieldTeams:
			f.renderOptionRow(&b, i, "Teams", f.renderTeamOptions())
		default:
			field := f.fields[i]
			if f.focus == i {
				b.WriteString(SelectedStyle.Render("> " + field.label + ":"))
				b.WriteString("\n")
				b.WriteString(NormalStyle.Render("  " + field.value))
				b.WriteString(AccentStyle.Render("█"))
			} else {
				b.WriteString(MutedStyle.Render("  " + field.label + ":"))
				b.WriteString("\n")
				val := field.value
				if val == "" {
					val = "-"
				}
				b.WriteString(NormalStyle.Render("  " + val))
			}
		}
		if i == userFieldUsername {
			if errText, ok := f.fieldErrs["Username"]; ok {
				b.WriteString("\n")
				b.WriteString(FieldErrorStyle.Render("  ✗ " + errText))
			}
		}
		if i < userFieldCount-1 {
			b.WriteString("\n\n")
		}
	}

	if f.submitting {
		b.WriteString("\n\n" + MutedStyle.Render("Saving..."))
	}

	modal := components.Modal{
		Title:  f.title(),
		Footer: "↑/↓ fields | ←/→ move | space toggle | ctrl+s save | esc cancel",
		Size:   components.ModalMedium,
	}
	return modal.Render(b.String(), width)
}

func (f userForm) renderOptionRow(b *strings.Builder, idx int, label, value string) {
	if f.focus == idx {
		b.WriteString(SelectedStyle.Render("> " + label + ":"))
	} else {
		b.WriteString(MutedStyle.Render("  " + label + ":"))
	}
	b.WriteString("\n")
	b.WriteString(NormalStyle.Render("  " + value))
}

func (f userForm) renderDeptOptions() string {
	return renderChecklist(len(f.departments), f.deptIdx, f.focus == userFieldDepartments, func(i int) (string, bool) {
		d := f.departments[i]
		return d.Name, f.selectedDept[d.ID]
	})
}

func (f userForm) renderTeamOptions() string {
	return renderChecklist(len(f.teams), f.teamIdx, f.focus == userFieldTeams, func(i int) (string, bool) {
		t := f.teams[i]
		return t.Name, f.selectedTeam[t.ID]
	})
}

func renderChecklist(count, cursor int, focused bool, item func(int) (string, bool)) string {
	if count == 0 {
		return MutedStyle.Render("none available")
	}
	var b strings.Builder
	for i := 0; i < count; i++ {
		if i > 0 {
			b.WriteString("  ")
		}
		name, selected := item(i)
		mark := "[ ]"
		if selected {
			mark = "[x]"
		}
		label := mark + " " + name
		if focused && i == cursor {
			b.WriteString(SelectedStyle.Render(label))
		} else {
			b.WriteString(NormalStyle.Render(label))
		}
	}
	return b.String()
}
