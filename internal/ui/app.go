package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/lumenworks/chanhub/cli/internal/api"
	"github.com/lumenworks/chanhub/cli/internal/config"
	"github.com/lumenworks/chanhub/cli/internal/ui/components"
)

// --- Tab Constants ---

const (
	tabAssets = 0
	tabUsers  = 1
	tabCount  = 2
)

var tabNames = []string{"Assets", "Users"}

// --- Messages ---

// errMsg carries the tab whose request failed, so the owning screen can
// release its in-flight flags even when another tab is showing.
type errMsg struct {
	err error
	tab int
}
type clearToastMsg struct{}
type startupCheckedMsg struct{ apiErr string }

type appToast struct {
	level string
	text  string
}

// --- App Model ---

// App is the root TUI model that routes between tabs.
type App struct {
	client *api.Client
	config *config.Config
	log    *logrus.Logger

	tab    int
	tabNav bool
	width  int
	height int

	// transportErr stays on screen until a request succeeds or the user
	// reloads; envelope rejections only flash as toasts.
	transportErr string
	quitConfirm  bool
	helpOpen     bool

	startupChecking bool
	spin            spinner.Model
	toast           *appToast

	assets AssetsModel
	users  UsersModel
}

// NewApp creates the root application model.
func NewApp(client *api.Client, cfg *config.Config, log *logrus.Logger) App {
	selfID := 0
	if cfg != nil {
		selfID = cfg.UserID
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)
	return App{
		client:          client,
		config:          cfg,
		log:             log,
		tab:             tabAssets,
		tabNav:          true,
		startupChecking: client != nil,
		spin:            sp,
		assets:          NewAssetsModel(client),
		users:           NewUsersModel(client, selfID),
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.assets.Init(), a.spin.Tick}
	if a.startupChecking {
		cmds = append(cmds, a.runStartupCheckCmd())
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.assets.width = msg.Width
		a.assets.height = msg.Height
		a.users.width = msg.Width
		a.users.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if !a.busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case errMsg:
		// Let the owning screen release its loading/submitting flags first.
		a, _ = a.deliverTo(msg.tab, msg)
		var statusErr *api.StatusError
		if errors.As(msg.err, &statusErr) {
			return a, a.setToast("error", statusErr.Message)
		}
		if a.log != nil {
			a.log.WithError(msg.err).Error("request failed")
		}
		a.transportErr = "Can't reach the server. Check your connection, then press r to retry."
		return a, nil

	case clearToastMsg:
		a.toast = nil
		return a, nil

	case startupCheckedMsg:
		a.startupChecking = false
		if msg.apiErr != "" {
			if a.log != nil {
				a.log.WithField("error", msg.apiErr).Warn("startup health check failed")
			}
			return a, a.setToast("error", "API unreachable. Data will load once the server is back.")
		}
		return a, nil

	case tea.KeyMsg:
		if a.quitConfirm {
			switch {
			case isKey(msg, "y"):
				return a, tea.Quit
			case isKey(msg, "n"), isBack(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		if a.helpOpen {
			if isBack(msg) || isKey(msg, "?") {
				a.helpOpen = false
			}
			return a, nil
		}
		if a.transportErr != "" {
			a.transportErr = ""
		}

		// Global keys
		if isKey(msg, "?") {
			a.helpOpen = true
			return a, nil
		}
		if isQuit(msg) && a.quitAllowed(msg) {
			if a.hasUnsaved() {
				a.quitConfirm = true
				return a, nil
			}
			return a, tea.Quit
		}

		if idx, ok := tabIndexForKey(msg.String()); ok {
			return a.switchTab(idx)
		}

		// Arrow tab navigation until user enters content with Down
		if a.tabNav {
			if isKey(msg, "left") {
				return a.switchTab((a.tab - 1 + tabCount) % tabCount)
			}
			if isKey(msg, "right") {
				return a.switchTab((a.tab + 1) % tabCount)
			}
			if isDown(msg) {
				a.tabNav = false
				return a, nil
			}
			a.tabNav = false
		} else {
			if isUp(msg) && a.canExitToTabNav() {
				a.tabNav = true
				return a, nil
			}
		}
	}

	a, cmd := a.deliver(msg)
	toastCmd := a.toastCmdForMsg(msg)
	spinCmd := a.spinKickCmd(msg)
	return a, tea.Batch(cmd, toastCmd, spinCmd)
}

// deliver routes domain results to the model that issued the request and
// everything else to the active tab. A save or delete finished while the
// user is on another tab still reconciles the list it belongs to.
func (a App) deliver(msg tea.Msg) (App, tea.Cmd) {
	if tab, ok := ownerTab(msg); ok {
		return a.deliverTo(tab, msg)
	}
	return a.deliverTo(a.tab, msg)
}

func (a App) deliverTo(tab int, msg tea.Msg) (App, tea.Cmd) {
	var cmd tea.Cmd
	switch tab {
	case tabAssets:
		a.assets, cmd = a.assets.Update(msg)
	case tabUsers:
		a.users, cmd = a.users.Update(msg)
	}
	return a, cmd
}

// ownerTab reports which tab's model owns a message, when it has one.
func ownerTab(msg tea.Msg) (int, bool) {
	switch msg := msg.(type) {
	case assetsLoadedMsg, managersLoadedMsg, assetSavedMsg, assetDeletedMsg, assetEditReadyMsg:
		return tabAssets, true
	case gateResolvedMsg, usersLoadedMsg, userSavedMsg, userDeletedMsg, userEditReadyMsg:
		return tabUsers, true
	case errMsg:
		return msg.tab, true
	}
	return 0, false
}

// busy reports whether anything is mid-flight and the spinner should run.
func (a App) busy() bool {
	return a.startupChecking ||
		a.assets.loading || a.assets.deleting || a.assets.form.submitting ||
		a.users.loading || a.users.deleting || a.users.form.submitting ||
		a.users.gate == gatePending
}

// spinKickCmd restarts the spinner when a message put a screen into a
// loading state.
func (a App) spinKickCmd(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); ok {
		return nil
	}
	if a.busy() {
		return a.spin.Tick
	}
	return nil
}

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)
	tabs := centerBlockUniform(a.renderTabs(), a.width)

	var content string
	switch a.tab {
	case tabAssets:
		content = a.assets.View()
	case tabUsers:
		content = a.users.View()
	}
	content = centerBlockUniform(content, a.width)

	if a.quitConfirm {
		content = centerBlockUniform(a.renderQuitConfirm(), a.width)
	} else if a.helpOpen {
		content = centerBlockUniform(a.renderHelp(), a.width)
	}

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.transportErr != "" {
		feedback = "\n\n" + centerBlockUniform(components.ErrorBox("Connection Problem", a.transportErr, a.width), a.width)
	} else if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n\n%s%s", banner, tabs, content, hints, feedback)
}

func (a *App) switchTab(newTab int) (App, tea.Cmd) {
	oldTab := a.tab
	a.tab = newTab
	if oldTab != newTab {
		cmd := a.initTab(newTab)
		return *a, cmd
	}
	return *a, nil
}

func (a *App) initTab(tab int) tea.Cmd {
	switch tab {
	case tabAssets:
		return a.assets.Init()
	case tabUsers:
		return a.users.Init()
	}
	return nil
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(tabNames)+1)
	for i, name := range tabNames {
		if i == a.tab {
			segments = append(segments, TabActiveStyle.Render(name))
		} else {
			segments = append(segments, TabInactiveStyle.Render(name))
		}
	}
	if a.busy() {
		segments = append(segments, " "+a.spin.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

// quitAllowed keeps plain q usable as search input inside list screens.
func (a App) quitAllowed(msg tea.KeyMsg) bool {
	if isKey(msg, "ctrl+c") {
		return true
	}
	switch a.tab {
	case tabAssets:
		return a.assets.view == assetsViewList && a.assets.searchBuf == ""
	case tabUsers:
		if a.users.gate != gateGranted {
			return true
		}
		return a.users.view == usersViewList && a.users.searchBuf == ""
	}
	return true
}

func (a App) hasUnsaved() bool {
	if a.assets.view == assetsViewForm {
		return true
	}
	if a.users.gate == gateGranted && a.users.view == usersViewForm {
		return true
	}
	return false
}

func (a App) canExitToTabNav() bool {
	switch a.tab {
	case tabAssets:
		if a.assets.view != assetsViewList {
			return false
		}
		return a.assets.list == nil || a.assets.list.Selected() == 0
	case tabUsers:
		if a.users.gate != gateGranted {
			return true
		}
		if a.users.view != usersViewList {
			return false
		}
		return a.users.list == nil || a.users.list.Selected() == 0
	}
	return false
}

func (a App) statusHints() []string {
	if a.quitConfirm {
		return []string{
			components.Hint("y", "Confirm"),
			components.Hint("n", "Cancel"),
		}
	}
	if a.helpOpen {
		return []string{
			components.Hint("esc", "Back"),
		}
	}
	return a.statusHintsForTab()
}

func (a App) statusHintsForTab() []string {
	base := []string{
		components.Hint("1/2", "Tabs"),
		components.Hint("?", "Help"),
		components.Hint("ctrl+c", "Quit"),
	}

	switch a.tab {
	case tabAssets:
		switch a.assets.view {
		case assetsViewForm:
			return append(base,
				components.Hint("↑/↓", "Fields"),
				components.Hint("←/→", "Cycle"),
				components.Hint("ctrl+s", "Save"),
				components.Hint("esc", "Cancel"),
			)
		case assetsViewConfirmDelete:
			return append(base,
				components.Hint("y", "Confirm"),
				components.Hint("n", "Cancel"),
			)
		default:
			return append(base,
				components.Hint("↑/↓", "Scroll"),
				components.Hint("enter", "Edit"),
				components.Hint("n", "New"),
				components.Hint("d", "Delete"),
				components.Hint("p", "Platform"),
				components.Hint("r", "Reload"),
			)
		}
	case tabUsers:
		if a.users.gate != gateGranted {
			if a.users.gate == gateDenied {
				return append(base, components.Hint("r", "Re-check"))
			}
			return base
		}
		switch a.users.view {
		case usersViewForm:
			return append(base,
				components.Hint("↑/↓", "Fields"),
				components.Hint("space", "Toggle"),
				components.Hint("ctrl+s", "Save"),
				components.Hint("esc", "Cancel"),
			)
		case usersViewConfirmDelete:
			return append(base,
				components.Hint("y", "Confirm"),
				components.Hint("n", "Cancel"),
			)
		default:
			return append(base,
				components.Hint("↑/↓", "Scroll"),
				components.Hint("enter", "Edit"),
				components.Hint("n", "New"),
				components.Hint("d", "Delete"),
				components.Hint("s", "Sort"),
				components.Hint("r", "Reload"),
			)
		}
	}
	return base
}

func (a App) renderHelp() string {
	hints := a.statusHintsForTab()
	lines := make([]string, 0, len(hints)+2)
	lines = append(lines, MutedStyle.Render("esc to close"))
	lines = append(lines, "")
	for _, hint := range hints {
		lines = append(lines, "  "+hint)
	}
	body := strings.Join(lines, "\n")
	return components.Indent(components.TitledBox("Help", body, a.width), 1)
}

func (a App) renderQuitConfirm() string {
	body := "A form is still open. Quit anyway?"
	return components.Indent(components.ConfirmDialog("Quit", body), 1)
}

func (a App) runStartupCheckCmd() tea.Cmd {
	return func() tea.Msg {
		checkClient := a.client.WithTimeout(700 * time.Millisecond)
		msg := startupCheckedMsg{}
		if _, err := checkClient.Health(); err != nil {
			msg.apiErr = err.Error()
		}
		return msg
	}
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

// toastCmdForMsg surfaces the server's own wording for completed mutations.
func (a *App) toastCmdForMsg(msg tea.Msg) tea.Cmd {
	var level, text string
	switch msg := msg.(type) {
	case assetSavedMsg:
		level, text = "success", fallbackText(msg.message, "Asset saved.")
	case assetDeletedMsg:
		level, text = "success", fallbackText(msg.message, "Asset deleted.")
	case userSavedMsg:
		level, text = "success", fallbackText(msg.message, "User saved.")
	case userDeletedMsg:
		level, text = "success", fallbackText(msg.message, "User deleted.")
	case assetEditReadyMsg:
		if msg.fromCache {
			level, text = "warning", "Showing the listed values; the latest copy could not be fetched."
		}
	case userEditReadyMsg:
		if msg.fromCache {
			level, text = "warning", "Showing the listed values; the latest copy could not be fetched."
		}
	}
	if text == "" {
		return nil
	}
	return a.setToast(level, text)
}

func fallbackText(text, fallback string) string {
	if strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}

func tabIndexForKey(key string) (int, bool) {
	switch key {
	case "1":
		return tabAssets, true
	case "2":
		return tabUsers, true
	}
	return 0, false
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
