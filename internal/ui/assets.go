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

type assetsLoadedMsg struct {
	seq   int
	items []api.Asset
}
type managersLoadedMsg struct {
	seq   int
	items []api.User
}
type assetSavedMsg struct {
	mode    formMode
	asset   api.Asset
	message string
}
type assetDeletedMsg struct {
	id      int
	message string
}
type assetEditReadyMsg struct {
	asset     api.Asset
	fromCache bool
}

// --- View States ---

type assetsView int

const (
	assetsViewList assetsView = iota
	assetsViewForm
	assetsViewConfirmDelete
)

// --- Assets Model ---

type AssetsModel struct {
	client *api.Client

	items    []api.Asset
	visible  []api.Asset
	managers []api.User
	list     *components.List
	view     assetsView

	loading  bool
	fetchErr string
	// reqSeq guards against a slow response landing after a newer one.
	reqSeq int

	searchBuf      string
	platformFilter string

	form         assetForm
	deleteTarget *api.Asset
	deleting     bool

	width  int
	height int
}

func NewAssetsModel(client *api.Client) AssetsModel {
	return AssetsModel{
		client:  client,
		list:    components.NewList(12),
		form:    newAssetForm(),
		view:    assetsViewList,
		loading: true,
		reqSeq:  1,
	}
}

// Init fetches under the sequence recorded at construction. Reloads bump
// the sequence, so a late response from here lands harmlessly.
func (m AssetsModel) Init() tea.Cmd {
	return tea.Batch(m.fetchAssets(m.reqSeq), m.fetchManagers(m.reqSeq))
}

func (m AssetsModel) Update(msg tea.Msg) (AssetsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case assetsLoadedMsg:
		if msg.seq != m.reqSeq {
			return m, nil
		}
		m.loading = false
		m.fetchErr = ""
		m.items = msg.items
		m.refreshList(false)
		return m, nil

	case managersLoadedMsg:
		if msg.seq != m.reqSeq {
			return m, nil
		}
		m.managers = msg.items
		m.form.setManagers(msg.items)
		return m, nil

	case assetSavedMsg:
		m.form.submitting = false
		m.view = assetsViewList
		if msg.mode == formModeEdit {
			for i := range m.items {
				if m.items[i].ID == msg.asset.ID {
					m.items[i] = msg.asset
					break
				}
			}
			m.refreshList(true)
			return m, nil
		}
		// Creation refreshes the manager pool; the asset list itself is
		// reloaded on demand with r.
		return m, m.loadManagers()

	case assetDeletedMsg:
		m.deleting = false
		m.deleteTarget = nil
		m.view = assetsViewList
		kept := m.items[:0]
		for _, a := range m.items {
			if a.ID != msg.id {
				kept = append(kept, a)
			}
		}
		m.items = kept
		m.refreshList(true)
		return m, nil

	case assetEditReadyMsg:
		m.form.loadAsset(msg.asset)
		m.form.managers = m.managers
		m.view = assetsViewForm
		if len(m.managers) == 0 {
			m.form.managersLoading = true
			return m, m.loadManagers()
		}
		m.form.managerIdx = m.form.managerIndexForID(msg.asset.ManagedByID)
		return m, nil

	case errMsg:
		m.loading = false
		m.deleting = false
		m.form.submitting = false
		m.form.managersLoading = false
		if !api.IsStatusError(msg.err) && m.view == assetsViewList {
			m.fetchErr = "Could not load assets. Press r to retry."
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case assetsViewForm:
			return m.handleFormKeys(msg)
		case assetsViewConfirmDelete:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleListKeys(msg)
		}
	}
	return m, nil
}

// --- Commands ---

func (m *AssetsModel) loadAssets() tea.Cmd {
	m.reqSeq++
	return m.fetchAssets(m.reqSeq)
}

func (m AssetsModel) fetchAssets(seq int) tea.Cmd {
	return func() tea.Msg {
		items, err := m.client.ListAssets()
		if err != nil {
			return errMsg{err: err, tab: tabAssets}
		}
		return assetsLoadedMsg{seq: seq, items: items}
	}
}

func (m AssetsModel) loadManagers() tea.Cmd {
	return m.fetchManagers(m.reqSeq)
}

func (m AssetsModel) fetchManagers(seq int) tea.Cmd {
	return func() tea.Msg {
		items, err := m.client.ListUsers()
		if err != nil {
			return errMsg{err: err, tab: tabAssets}
		}
		return managersLoadedMsg{seq: seq, items: items}
	}
}

// loadAssetForEdit prefers a fresh copy from the server but falls back to
// the row already on screen when the fetch fails.
func (m AssetsModel) loadAssetForEdit(row api.Asset) tea.Cmd {
	return func() tea.Msg {
		asset, err := m.client.GetAsset(row.ID)
		if err != nil {
			return assetEditReadyMsg{asset: row, fromCache: true}
		}
		return assetEditReadyMsg{asset: *asset}
	}
}

func (m AssetsModel) deleteAsset(id int) tea.Cmd {
	return func() tea.Msg {
		message, err := m.client.DeleteAsset(id)
		if err != nil {
			return errMsg{err: err, tab: tabAssets}
		}
		return assetDeletedMsg{id: id, message: message}
	}
}

// --- Filtering ---

// visibleAssets applies the search text (name, URL, platform) and the
// platform filter to the loaded rows.
func (m AssetsModel) visibleAssets() []api.Asset {
	query := strings.ToLower(strings.TrimSpace(m.searchBuf))
	out := make([]api.Asset, 0, len(m.items))
	for _, a := range m.items {
		if m.platformFilter != "" && !strings.EqualFold(a.Platform, m.platformFilter) {
			continue
		}
		if query != "" {
			name := strings.ToLower(a.ChannelName)
			url := strings.ToLower(a.ChannelURL)
			platform := strings.ToLower(a.Platform)
			if !strings.Contains(name, query) && !strings.Contains(url, query) && !strings.Contains(platform, query) {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

// platformFilterOptions derives the filter choices from the data actually
// loaded, so the filter never offers a platform with zero rows.
func (m AssetsModel) platformFilterOptions() []string {
	seen := map[string]bool{}
	var opts []string
	for _, a := range m.items {
		if a.Platform == "" || seen[a.Platform] {
			continue
		}
		seen[a.Platform] = true
		opts = append(opts, a.Platform)
	}
	sort.Strings(opts)
	return opts
}

func (m *AssetsModel) cyclePlatformFilter() {
	opts := m.platformFilterOptions()
	if len(opts) == 0 {
		m.platformFilter = ""
		return
	}
	if m.platformFilter == "" {
		m.platformFilter = opts[0]
		return
	}
	for i, opt := range opts {
		if strings.EqualFold(opt, m.platformFilter) {
			if i == len(opts)-1 {
				m.platformFilter = ""
			} else {
				m.platformFilter = opts[i+1]
			}
			return
		}
	}
	m.platformFilter = ""
}

func (m *AssetsModel) refreshList(keepCursor bool) {
	m.visible = m.visibleAssets()
	labels := make([]string, len(m.visible))
	for i, a := range m.visible {
		labels[i] = a.ChannelName
	}
	if keepCursor {
		m.list.ReplaceItems(labels)
	} else {
		m.list.SetItems(labels)
	}
}

func (m AssetsModel) managerName(id int) string {
	for _, u := range m.managers {
		if u.ID == id {
			return u.Name
		}
	}
	return fmt.Sprintf("Unknown (ID: %d)", id)
}

// --- Key Handling ---

func (m AssetsModel) handleListKeys(msg tea.KeyMsg) (AssetsModel, tea.Cmd) {
	switch {
	case isDown(msg):
		m.list.Down()
	case isUp(msg):
		m.list.Up()
	case isEnter(msg):
		if idx := m.list.Selected(); idx < len(m.visible) {
			return m, m.loadAssetForEdit(m.visible[idx])
		}
	case isKey(msg, "n"):
		m.form.reset(formModeCreate)
		m.form.managers = m.managers
		m.view = assetsViewForm
		if len(m.managers) == 0 {
			m.form.managersLoading = true
			return m, m.loadManagers()
		}
	case isKey(msg, "d"):
		if idx := m.list.Selected(); idx < len(m.visible) {
			target := m.visible[idx]
			m.deleteTarget = &target
			m.view = assetsViewConfirmDelete
		}
	case isKey(msg, "r"):
		m.loading = true
		m.fetchErr = ""
		return m, tea.Batch(m.loadAssets(), m.loadManagers())
	case isKey(msg, "p"):
		m.cyclePlatformFilter()
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
		if m.searchBuf != "" || m.platformFilter != "" {
			m.searchBuf = ""
			m.platformFilter = ""
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

func (m AssetsModel) handleFormKeys(msg tea.KeyMsg) (AssetsModel, tea.Cmd) {
	cmd, closed := m.form.handleKeys(msg, m.client)
	if closed {
		m.view = assetsViewList
	}
	return m, cmd
}

func (m AssetsModel) handleConfirmKeys(msg tea.KeyMsg) (AssetsModel, tea.Cmd) {
	if m.deleting {
		return m, nil
	}
	switch {
	case isKey(msg, "y"):
		if m.deleteTarget == nil {
			m.view = assetsViewList
			return m, nil
		}
		m.deleting = true
		return m, m.deleteAsset(m.deleteTarget.ID)
	case isKey(msg, "n"), isBack(msg):
		m.deleteTarget = nil
		m.view = assetsViewList
	}
	return m, nil
}

// --- View ---

func (m AssetsModel) View() string {
	switch m.view {
	case assetsViewForm:
		return components.Indent(m.form.render(m.width), 1)
	case assetsViewConfirmDelete:
		return m.renderConfirm()
	default:
		return components.Indent(m.renderList(), 1)
	}
}

func (m AssetsModel) renderConfirm() string {
	name := ""
	if m.deleteTarget != nil {
		name = m.deleteTarget.ChannelName
	}
	body := fmt.Sprintf("Delete %q? This cannot be undone.", name)
	if m.deleting {
		body += "\n\n" + MutedStyle.Render("Deleting...")
	}
	return components.Indent(components.DangerConfirmDialog("Delete Asset", body), 1)
}

func (m AssetsModel) renderList() string {
	if m.loading {
		return "  " + MutedStyle.Render("Loading assets...")
	}
	if m.fetchErr != "" {
		return components.ErrorBox("Assets", m.fetchErr, m.width)
	}
	if len(m.items) == 0 {
		content := MutedStyle.Render("No assets yet. Press n to add one.")
		return components.Box(content, m.width)
	}

	contentWidth := components.BoxContentWidth(m.width)
	columns := []components.TableColumn{
		{Header: "ID", Width: 5, Align: lipgloss.Right},
		{Header: "Channel", Width: 24},
		{Header: "Platform", Width: 10},
		{Header: "Managed By", Width: 18},
		{Header: "Created", Width: 10},
	}

	visible := m.visible
	start := m.list.Offset
	end := start + m.list.PageSize
	if end > len(visible) {
		end = len(visible)
	}
	rows := make([][]string, 0, end-start)
	for _, a := range visible[start:end] {
		rows = append(rows, []string{
			strconv.Itoa(a.ID),
			a.ChannelName,
			a.Platform,
			m.managerName(a.ManagedByID),
			a.CreatedAt.Format("2006-01-02"),
		})
	}

	activeRow := m.list.Selected() - start
	grid := components.TableGridWithActiveRow(columns, rows, contentWidth, activeRow)

	countLine := fmt.Sprintf("%d of %d shown", len(visible), len(m.items))
	if m.platformFilter != "" {
		countLine = fmt.Sprintf("%s · platform: %s", countLine, m.platformFilter)
	}
	if q := strings.TrimSpace(m.searchBuf); q != "" {
		countLine = fmt.Sprintf("%s · search: %s", countLine, q)
	}
	content := MutedStyle.Render(countLine) + "\n\n" + grid
	if len(visible) == 0 {
		content = MutedStyle.Render(countLine) + "\n\n" + MutedStyle.Render("No assets match the current filter.")
	}
	return components.TitledBox("Channel Assets", content, m.width)
}
