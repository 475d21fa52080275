package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumenworks/chanhub/cli/internal/api"
	"github.com/lumenworks/chanhub/cli/internal/ui/components"
)

// --- Messages ---

type usersLoadedMsg struct {
	seq   int
	items []api.User
}
type userSavedMsg struct {
	mode    formMode
	user    api.User
	message string
}
type userDeletedMsg struct {
	id      int
	message string
}
type userEditReadyMsg struct {
	user      api.User
	fromCache bool
}

// --- View States ---

type usersView int

const (
	usersViewList usersView = iota
	usersViewForm
	usersViewConfirmDelete
)

// idSortState is the tri-state ID sort: server order, ascending, descending.
type idSortState int

const (
	sortNone idSortState = iota
	sortAsc
	sortDesc
)

func (s idSortState) next() idSortState {
	switch s {
	case sortNone:
		return sortAsc
	case sortAsc:
		return sortDesc
	default:
		return sortAsc
	}
}

// --- Users Model ---

type UsersModel struct {
	client *api.Client
	// selfID is the signed-in user, checked against the permission gate.
	selfID int
	gate   gateState

	items   []api.User
	visible []api.User
	list    *components.List
	view    usersView

	loading  bool
	fetchErr string
	reqSeq   int

	searchBuf string
	sortState idSortState

	form         userForm
	deleteTarget *api.User
	deleting     bool

	width  int
	height int
}

func NewUsersModel(client *api.Client, selfID int) UsersModel {
	return UsersModel{
		client: client,
		selfID: selfID,
		gate:   gateIdle,
		list:   components.NewList(12),
		form:   newUserForm(),
		view:   usersViewList,
	}
}

// Init starts the permission check. The gate stays idle until the tab
// is first opened, so nothing spins for a check that never started.
func (m *UsersModel) Init() tea.Cmd {
	if m.selfID <= 0 {
		m.gate = gateUnauthenticated
		return nil
	}
	m.gate = gatePending
	return resolveGateCmd(m.client, m.selfID)
}

func (m UsersModel) Update(msg tea.Msg) (UsersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case gateResolvedMsg:
		m.gate = msg.state
		if m.gate == gateGranted {
			m.loading = true
			return m, m.loadUsers()
		}
		return m, nil

	case usersLoadedMsg:
		if msg.seq != m.reqSeq {
			return m, nil
		}
		m.loading = false
		m.fetchErr = ""
		m.items = msg.items
		m.form.setOptions(m.deriveDepartments(), m.deriveTeams())
		m.refreshList(false)
		return m, nil

	case userSavedMsg:
		m.form.submitting = false
		m.view = usersViewList
		// Both create and edit reload the whole list; memberships and
		// server-side defaults are easiest to pick up wholesale.
		m.loading = true
		return m, m.loadUsers()

	case userDeletedMsg:
		m.deleting = false
		m.deleteTarget = nil
		m.view = usersViewList
		kept := m.items[:0]
		for _, u := range m.items {
			if u.ID != msg.id {
				kept = append(kept, u)
			}
		}
		m.items = kept
		m.refreshList(true)
		return m, nil

	case userEditReadyMsg:
		m.form.loadUser(msg.user)
		m.form.setOptions(m.deriveDepartments(), m.deriveTeams())
		m.view = usersViewForm
		return m, nil

	case errMsg:
		m.loading = false
		m.deleting = false
		m.form.submitting = false
		if !api.IsStatusError(msg.err) && m.view == usersViewList && m.gate == gateGranted {
			m.fetchErr = "Could not load users. Press r to retry."
		}
		return m, nil

	case tea.KeyMsg:
		if m.gate != gateGranted {
			return m.handleGateKeys(msg)
		}
		switch m.view {
		case usersViewForm:
			return m.handleFormKeys(msg)
		case usersViewConfirmDelete:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleListKeys(msg)
		}
	}
	return m, nil
}

// --- Commands ---

func (m *UsersModel) loadUsers() tea.Cmd {
	m.reqSeq++
	seq := m.reqSeq
	return func() tea.Msg {
		items, err := m.client.ListUsers()
		if err != nil {
			return errMsg{err: err, tab: tabUsers}
		}
		return usersLoadedMsg{seq: seq, items: items}
	}
}

func (m UsersModel) loadUserForEdit(row api.User) tea.Cmd {
	return func() tea.Msg {
		user, err := m.client.GetUser(row.ID)
		if err != nil {
			return userEditReadyMsg{user: row, fromCache: true}
		}
		return userEditReadyMsg{user: *user}
	}
}

func (m UsersModel) deleteUser(id int) tea.Cmd {
	return func() tea.Msg {
		message, err := m.client.DeleteUser(id)
		if err != nil {
			return errMsg{err: err, tab: tabUsers}
		}
		return userDeletedMsg{id: id, message: message}
	}
}

// --- Derived options ---

func (m UsersModel) deriveDepartments() []api.Department {
	seen := map[int]bool{}
	var out []api.Department
	for _, u := range m.items {
		for _, d := range u.Departments {
			if seen[d.ID] {
				continue
			}
			seen[d.ID] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m UsersModel) deriveTeams() []api.Team {
	seen := map[int]bool{}
	var out []api.Team
	for _, u := range m.items {
		for _, t := range u.Teams {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// --- Filtering and sorting ---

// visibleUsers applies the search text (employee code, name, contact,
// username) and the ID sort to the loaded rows.
func (m UsersModel) visibleUsers() []api.User {
	query := strings.ToLower(strings.TrimSpace(m.searchBuf))
	out := make([]api.User, 0, len(m.items))
	for _, u := range m.items {
		if query != "" {
			code := strings.ToLower(u.EmployeeNo)
			name := strings.ToLower(u.Name)
			contact := strings.ToLower(u.Contact)
			username := strings.ToLower(u.Username)
			if !strings.Contains(code, query) && !strings.Contains(name, query) &&
				!strings.Contains(contact, query) && !strings.Contains(username, query) {
				continue
			}
		}
		out = append(out, u)
	}
	switch m.sortState {
	case sortAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	case sortDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	}
	return out
}

func (m *UsersModel) refreshList(keepCursor bool) {
	m.visible = m.visibleUsers()
	labels := make([]string, len(m.visible))
	for i, u := range m.visible {
		labels[i] = u.Username
	}
	if keepCursor {
		m.list.ReplaceItems(labels)
	} else {
		m.list.SetItems(labels)
	}
}

// --- Key Handling ---

func (m UsersModel) handleGateKeys(msg tea.KeyMsg) (UsersModel, tea.Cmd) {
	if m.gate == gateDenied && isKey(msg, "r") {
		m.gate = gatePending
		return m, resolveGateCmd(m.client, m.selfID)
	}
	return m, nil
}

func (m UsersModel) handleListKeys(msg tea.KeyMsg) (UsersModel, tea.Cmd) {
	switch {
	case isDown(msg):
		m.list.Down()
	case isUp(msg):
		m.list.Up()
	case isEnter(msg):
		if idx := m.list.Selected(); idx < len(m.visible) {
			return m, m.loadUserForEdit(m.visible[idx])
		}
	case isKey(msg, "n"):
		m.form.reset(formModeCreate)
		m.form.setOptions(m.deriveDepartments(), m.deriveTeams())
		m.view = usersViewForm
	case isKey(msg, "d"):
		if idx := m.list.Selected(); idx < len(m.visible) {
			target := m.visible[idx]
			m.deleteTarget = &target
			m.view = usersViewConfirmDelete
		}
	case isKey(msg, "r"):
		m.loading = true
		m.fetchErr = ""
		return m, m.loadUsers()
	case isKey(msg, "s"):
		m.sortState = m.sortState.next()
		m.refreshList(false)
	case isKey(msg, "backspace", "delete"):
		if len(m.searchBuf) > 0 {
			m.searchBuf = m.searchBuf[:len(m.searchBuf)-1]
			m.refreshList(false)
		}
	case isKey(msg, "cmd+backspace", "cmd+delete", "ctrl+u"):
		if m.searchBuf != "" {
			m.searchBuf = ""
			m.refreshList(false)
		}
	case isBack(msg):
		if m.searchBuf != "" {
			m.searchBuf = ""
			m.refreshList(false)
		}
	default:
		ch := msg.String()
		if len(ch) == 1 || ch == " " {
			if ch == " " && m.searchBuf == "" {
				return m, nil
			}
			m.searchBuf += ch
			m.refreshList(false)
		}
	}
	return m, nil
}

func (m UsersModel) handleFormKeys(msg tea.KeyMsg) (UsersModel, tea.Cmd) {
	cmd, closed := m.form.handleKeys(msg, m.client)
	if closed {
		m.view = usersViewList
	}
	return m, cmd
}

func (m UsersModel) handleConfirmKeys(msg tea.KeyMsg) (UsersModel, tea.Cmd) {
	if m.deleting {
		return m, nil
	}
	switch {
	case isKey(msg, "y"):
		if m.deleteTarget == nil {
			m.view = usersViewList
			return m, nil
		}
		m.deleting = true
		return m, m.deleteUser(m.deleteTarget.ID)
	case isKey(msg, "n"), isBack(msg):
		m.deleteTarget = nil
		m.view = usersViewList
	}
	return m, nil
}

// --- View ---

func (m UsersModel) View() string {
	switch m.gate {
	case gateIdle, gatePending:
		return "  " + MutedStyle.Render("Checking permissions...")
	case gateUnauthenticated:
		content := "You are not signed in.\n\nRun chanhub login, then restart the console."
		return components.Indent(components.ErrorBox("Not Signed In", content, m.width), 1)
	case gateDenied:
		content := "Your account does not have user management access.\n\nPress r to re-check."
		return components.Indent(components.ErrorBox("Access Denied", content, m.width), 1)
	}

	switch m.view {
	case usersViewForm:
		return components.Indent(m.form.render(m.width), 1)
	case usersViewConfirmDelete:
		return m.renderConfirm()
	default:
		return components.Indent(m.renderList(), 1)
	}
}

func (m UsersModel) renderConfirm() string {
	name := ""
	if m.deleteTarget != nil {
		name = m.deleteTarget.Username
	}
	body := fmt.Sprintf("Delete user %q? This cannot be undone.", name)
	if m.deleting {
		body += "\n\n" + MutedStyle.Render("Deleting...")
	}
	return components.Indent(components.DangerConfirmDialog("Delete User", body), 1)
}

func (m UsersModel) sortLabel() string {
	switch m.sortState {
	case sortAsc:
		return "id ↑"
	case sortDesc:
		return "id ↓"
	}
	return ""
}

func (m UsersModel) renderList() string {
	if m.loading {
		return "  " + MutedStyle.Render("Loading users...")
	}
	if m.fetchErr != "" {
		return components.ErrorBox("Users", m.fetchErr, m.width)
	}
	if len(m.items) == 0 {
		content := MutedStyle.Render("No users yet. Press n to add one.")
		return components.Box(content, m.width)
	}

	contentWidth := components.BoxContentWidth(m.width)
	columns := []components.TableColumn{
		{Header: "ID", Width: 5, Align: lipgloss.Right},
		{Header: "Username", Width: 14},
		{Header: "Name", Width: 18},
		{Header: "Emp No", Width: 9},
		{Header: "Active", Width: 6, Align: lipgloss.Center},
	}

	visible := m.visible
	start := m.list.Offset
	end := start + m.list.PageSize
	if end > len(visible) {
		end = len(visible)
	}
	rows := make([][]string, 0, end-start)
	for _, u := range visible[start:end] {
		active := "no"
		if u.IsActive {
			active = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(u.ID),
			u.Username,
			u.Name,
			u.EmployeeNo,
			active,
		})
	}

	activeRow := m.list.Selected() - start
	grid := components.TableGridWithActiveRow(columns, rows, contentWidth, activeRow)

	countLine := fmt.Sprintf("%d of %d shown", len(visible), len(m.items))
	if label := m.sortLabel(); label != "" {
		countLine = fmt.Sprintf("%s · sort: %s", countLine, label)
	}
	if q := strings.TrimSpace(m.searchBuf); q != "" {
		countLine = fmt.Sprintf("%s · search: %s", countLine, q)
	}
	content := MutedStyle.Render(countLine) + "\n\n" + grid
	if len(visible) == 0 {
		content = MutedStyle.Render(countLine) + "\n\n" + MutedStyle.Render("No users match the current filter.")
	}
	return components.TitledBox("Platform Users", content, m.width)
}
