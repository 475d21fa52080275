package ui

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"github.com/lumenworks/chanhub/cli/internal/api"
	"github.com/lumenworks/chanhub/cli/internal/ui/components"
)

const (
	assetFieldName = iota
	assetFieldURL
	assetFieldPlatform
	assetFieldManager
	assetFieldCount
)

var platformOptions = []string{"YouTube", "Instagram", "Twitter", "TikTok", "Facebook", "Other"}

// assetDraft is the validated shape of the asset form. Every rule runs on
// submit so the user sees all problems at once, not just the first.
type assetDraft struct {
	ChannelName string `validate:"required"`
	ChannelURL  string `validate:"required,request_url"`
	Platform    string `validate:"required"`
	ManagedByID int    `validate:"required"`
}

var draftValidator = newDraftValidator()

func newDraftValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// The server accepts anything url.ParseRequestURI does, scheme included.
	_ = v.RegisterValidation("request_url", func(fl validator.FieldLevel) bool {
		_, err := url.ParseRequestURI(fl.Field().String())
		return err == nil
	})
	return v
}

func (d assetDraft) Validate() map[string]string {
	err := draftValidator.Struct(d)
	if err == nil {
		return nil
	}
	fieldErrs := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fieldErrs[fe.Field()] = draftErrorMessage(fe.Field(), fe.Tag())
		}
	}
	return fieldErrs
}

func draftErrorMessage(field, tag string) string {
	switch field {
	case "ChannelName":
		return "Channel name is required"
	case "ChannelURL":
		if tag == "required" {
			return "Channel URL is required"
		}
		return "Enter a valid URL"
	case "Platform":
		return "Platform is required"
	case "ManagedByID":
		return "Select a managing user"
	}
	return "Invalid value"
}

// assetForm holds the add/edit form state for the assets screen.
type assetForm struct {
	mode    formMode
	assetID int

	fields []formField
	focus  int

	// platformOpts is usually platformOptions, extended with the stored
	// value when an edited row carries a legacy freeform platform.
	platformOpts []string
	platformIdx  int

	managers        []api.User
	managerIdx      int // index into managers; -1 means unselected
	managersLoading bool

	fieldErrs  map[string]string
	submitting bool
}

func newAssetForm() assetForm {
	return assetForm{
		fields: []formField{
			{label: "Channel Name"},
			{label: "Channel URL"},
		},
		platformOpts: platformOptions,
		managerIdx:   -1,
		fieldErrs:    map[string]string{},
	}
}

func (f *assetForm) reset(mode formMode) {
	f.mode = mode
	f.assetID = 0
	f.focus = 0
	f.platformOpts = platformOptions
	f.platformIdx = 0
	f.managerIdx = -1
	f.fieldErrs = map[string]string{}
	f.submitting = false
	for i := range f.fields {
		f.fields[i].value = ""
	}
}

// loadAsset fills the form from an existing asset for editing.
func (f *assetForm) loadAsset(a api.Asset) {
	f.reset(formModeEdit)
	f.assetID = a.ID
	f.fields[assetFieldName].value = a.ChannelName
	f.fields[assetFieldURL].value = a.ChannelURL
	f.setPlatform(a.Platform)
	f.managerIdx = f.managerIndexForID(a.ManagedByID)
}

// setPlatform selects the stored platform. Legacy rows can carry freeform
// values; those stay selectable for this edit instead of snapping to the
// first known option, so saving does not silently rewrite the platform.
func (f *assetForm) setPlatform(value string) {
	f.platformOpts = platformOptions
	if value == "" {
		f.platformIdx = 0
		return
	}
	if idx, ok := optionIndex(f.platformOpts, value); ok {
		f.platformIdx = idx
		return
	}
	f.platformOpts = append(append([]string{}, platformOptions...), value)
	f.platformIdx = len(f.platformOpts) - 1
}

func (f *assetForm) setManagers(users []api.User) {
	keepID := f.selectedManagerID()
	f.managers = users
	f.managersLoading = false
	f.managerIdx = f.managerIndexForID(keepID)
}

func (f assetForm) managerIndexForID(id int) int {
	if id <= 0 {
		return -1
	}
	for i, u := range f.managers {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (f assetForm) selectedManagerID() int {
	if f.managerIdx < 0 || f.managerIdx >= len(f.managers) {
		return 0
	}
	return f.managers[f.managerIdx].ID
}

func (f assetForm) draft() assetDraft {
	return assetDraft{
		ChannelName: strings.TrimSpace(f.fields[assetFieldName].value),
		ChannelURL:  strings.TrimSpace(f.fields[assetFieldURL].value),
		Platform:    f.platformOpts[f.platformIdx],
		ManagedByID: f.selectedManagerID(),
	}
}

func (f assetForm) input() api.AssetInput {
	d := f.draft()
	return api.AssetInput{
		ChannelName: d.ChannelName,
		ChannelURL:  d.ChannelURL,
		Platform:    d.Platform,
		ManagedByID: d.ManagedByID,
	}
}

// fieldErrKey maps a focus index to the draft field it edits.
func assetFieldErrKey(focus int) string {
	switch focus {
	case assetFieldName:
		return "ChannelName"
	case assetFieldURL:
		return "ChannelURL"
	case assetFieldPlatform:
		return "Platform"
	case assetFieldManager:
		return "ManagedByID"
	}
	return ""
}

func (f *assetForm) clearFieldErr(focus int) {
	delete(f.fieldErrs, assetFieldErrKey(focus))
}

// handleKeys mutates the form and returns a submit command when the user
// saves a valid draft. The bool reports whether the form was closed.
func (f *assetForm) handleKeys(msg tea.KeyMsg, client *api.Client) (tea.Cmd, bool) {
	if f.submitting {
		return nil, false
	}

	switch {
	case isBack(msg):
		return nil, true
	case isDown(msg):
		f.focus = (f.focus + 1) % assetFieldCount
		return nil, false
	case isUp(msg):
		f.focus = (f.focus - 1 + assetFieldCount) % assetFieldCount
		return nil, false
	case isKey(msg, "ctrl+s"):
		return f.submit(client), false
	}

	switch f.focus {
	case assetFieldPlatform:
		switch {
		case isKey(msg, "left"):
			f.platformIdx = (f.platformIdx - 1 + len(f.platformOpts)) % len(f.platformOpts)
			f.clearFieldErr(f.focus)
		case isKey(msg, "right"), isSpace(msg):
			f.platformIdx = (f.platformIdx + 1) % len(f.platformOpts)
			f.clearFieldErr(f.focus)
		}
	case assetFieldManager:
		if f.managersLoading || len(f.managers) == 0 {
			return nil, false
		}
		switch {
		case isKey(msg, "left"):
			if f.managerIdx < 0 {
				f.managerIdx = len(f.managers) - 1
			} else {
				f.managerIdx = (f.managerIdx - 1 + len(f.managers)) % len(f.managers)
			}
			f.clearFieldErr(f.focus)
		case isKey(msg, "right"), isSpace(msg):
			f.managerIdx = (f.managerIdx + 1) % len(f.managers)
			f.clearFieldErr(f.focus)
		}
	default:
		switch {
		case isKey(msg, "backspace", "delete"):
			field := &f.fields[f.focus]
			if field.value != "" {
				field.value = dropLastRune(field.value)
				f.clearFieldErr(f.focus)
			}
		case isKey(msg, "cmd+backspace", "cmd+delete", "ctrl+u"):
			f.fields[f.focus].value = ""
			f.clearFieldErr(f.focus)
		default:
			ch := msg.String()
			if len(ch) == 1 || ch == " " {
				f.fields[f.focus].value += ch
				f.clearFieldErr(f.focus)
			}
		}
	}
	return nil, false
}

func (f *assetForm) submit(client *api.Client) tea.Cmd {
	draft := f.draft()
	if errs := draft.Validate(); len(errs) > 0 {
		f.fieldErrs = errs
		return nil
	}
	f.fieldErrs = map[string]string{}
	f.submitting = true

	mode := f.mode
	assetID := f.assetID
	input := f.input()
	return func() tea.Msg {
		if mode == formModeEdit {
			asset, message, err := client.UpdateAsset(assetID, input)
			if err != nil {
				return errMsg{err: err, tab: tabAssets}
			}
			return assetSavedMsg{mode: mode, asset: *asset, message: message}
		}
		asset, message, err := client.CreateAsset(input)
		if err != nil {
			return errMsg{err: err, tab: tabAssets}
		}
		return assetSavedMsg{mode: mode, asset: *asset, message: message}
	}
}

func (f assetForm) title() string {
	if f.mode == formModeEdit {
		return "Edit Asset"
	}
	return "Add Asset"
}

func (f assetForm) render(width int) string {
	var b strings.Builder

	for i := 0; i < assetFieldCount; i++ {
		switch i {
		case assetFieldPlatform:
			f.renderOptionField(&b, i, "Platform", f.platformOpts[f.platformIdx])
		case assetFieldManager:
			f.renderOptionField(&b, i, "Managed By", f.renderManagerValue())
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
		if errText, ok := f.fieldErrs[assetFieldErrKey(i)]; ok {
			b.WriteString("\n")
			b.WriteString(FieldErrorStyle.Render("  ✗ " + errText))
		}
		if i < assetFieldCount-1 {
			b.WriteString("\n\n")
		}
	}

	if f.submitting {
		b.WriteString("\n\n" + MutedStyle.Render("Saving..."))
	}

	modal := components.Modal{
		Title:  f.title(),
		Footer: "↑/↓ fields | ←/→ cycle | ctrl+s save | esc cancel",
		Size:   components.ModalMedium,
	}
	return modal.Render(b.String(), width)
}

func (f assetForm) renderOptionField(b *strings.Builder, idx int, label, value string) {
	if f.focus == idx {
		b.WriteString(SelectedStyle.Render("> " + label + ":"))
	} else {
		b.WriteString(MutedStyle.Render("  " + label + ":"))
	}
	b.WriteString("\n")
	b.WriteString(NormalStyle.Render("  " + value))
}

func (f assetForm) renderManagerValue() string {
	if f.managersLoading {
		return MutedStyle.Render("loading users...")
	}
	if len(f.managers) == 0 {
		return MutedStyle.Render("no users available")
	}
	if f.managerIdx < 0 {
		return MutedStyle.Render("none selected")
	}
	u := f.managers[f.managerIdx]
	return fmt.Sprintf("%s (%s)", u.Name, u.Username)
}
