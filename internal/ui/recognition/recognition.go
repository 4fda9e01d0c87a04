// Package recognition is the breed recognition screen: it owns a workflow
// for as long as the screen is open and renders its state.
package recognition

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/petsense/internal/keys"
	"github.com/zjrosen/petsense/internal/log"
	"github.com/zjrosen/petsense/internal/photo"
	"github.com/zjrosen/petsense/internal/source"
	"github.com/zjrosen/petsense/internal/ui/modal"
	"github.com/zjrosen/petsense/internal/ui/picker"
	"github.com/zjrosen/petsense/internal/ui/styles"
	"github.com/zjrosen/petsense/internal/ui/toaster"
	"github.com/zjrosen/petsense/internal/workflow"
)

// Click targets.
const (
	ZoneBack   = "recognition-back"
	ZoneAdd    = "recognition-add"
	ZoneSubmit = "recognition-submit"
)

const (
	choiceCamera  = "camera"
	choiceLibrary = "library"
)

// BackMsg asks the host to close the screen.
type BackMsg struct{}

// LibraryUsedMsg reports the directory a library photo was picked from.
type LibraryUsedMsg struct {
	Dir string
}

type libraryAccessMsg struct {
	err error
}

type mode int

const (
	modeMain mode = iota
	modeChooser
	modeFiles
	modeCapturing
)

// Config wires the screen to its image sources and workflow settings.
type Config struct {
	Workflow       workflow.Config
	Library        source.Library
	Camera         source.Provider
	ShowTip        bool
	ShowDisclaimer bool
}

// Model is the recognition screen.
type Model struct {
	cfg Config
	wf  workflow.Model

	mode     mode
	chooser  picker.Model
	files    filepicker.Model
	notice   *modal.Model
	toaster  toaster.Model
	progress progress.Model
	spinner  spinner.Model
	spinning bool
	help     help.Model

	width  int
	height int
}

// New creates the screen with a fresh Idle workflow.
func New(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = s.Style.Foreground(styles.SpinnerColor)

	return Model{
		cfg: cfg,
		wf:  workflow.New(cfg.Workflow),
		chooser: picker.New("Add photo", []picker.Option{
			{Label: "Take photo", Value: choiceCamera, Hotkey: keys.Chooser.Camera},
			{Label: "Choose from library", Value: choiceLibrary, Hotkey: keys.Chooser.Lib},
		}),
		toaster: toaster.New(),
		progress: progress.New(
			progress.WithGradient(styles.ProgressGradientStartHex, styles.ProgressGradientEndHex),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
		spinner: s,
		help:    help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Workflow exposes the underlying state machine.
func (m Model) Workflow() workflow.Model { return m.wf }

// Destroy cancels the workflow's timers and requests. The screen ignores
// workflow messages afterwards.
func (m Model) Destroy() Model {
	m.wf = m.wf.CancelAcquire().Destroy()
	m.spinning = false
	return m
}

// SetSize updates the screen dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	m.chooser = m.chooser.SetSize(width, height)
	if m.notice != nil {
		n := m.notice.SetSize(width, height)
		m.notice = &n
	}
	m.progress.Width = max(min(width-8, 60), 10)
	m.files.Height = max(height-8, 3)
	m.help.Width = width
	return m
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case workflow.AcquiredMsg, workflow.GateElapsedMsg, workflow.FrameMsg, workflow.SubmittedMsg:
		var cmd tea.Cmd
		m.wf, cmd = m.wf.Update(msg)
		if m.mode == modeCapturing && !m.wf.Acquiring() {
			m.mode = modeMain
		}
		return m, tea.Batch(cmd, m.startSpinner())

	case workflow.NoticeMsg:
		return m.showNotice(msg)

	case libraryAccessMsg:
		return m.openLibrary(msg.err)

	case modal.AcknowledgedMsg:
		m.notice = nil
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case picker.SelectMsg:
		return m.handleChoice(msg.Value)

	case picker.CancelMsg:
		m.mode = modeMain
		log.Debug(log.CatUI, "source chooser dismissed")
		return m, nil
	}

	if m.notice != nil {
		n, cmd := m.notice.Update(msg)
		m.notice = &n
		return m, cmd
	}

	switch m.mode {
	case modeChooser:
		var cmd tea.Cmd
		m.chooser, cmd = m.chooser.Update(msg)
		return m, cmd
	case modeFiles:
		return m.updateFiles(msg)
	case modeCapturing:
		if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.Chooser.Abort) {
			log.Debug(log.CatUI, "capture cancelled")
			m.wf = m.wf.CancelAcquire()
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Recognition.Back):
		return m, func() tea.Msg { return BackMsg{} }
	case key.Matches(msg, keys.Recognition.AddPhoto):
		m.mode = modeChooser
		return m, nil
	case key.Matches(msg, keys.Recognition.Submit):
		return m.submit()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	switch {
	case zone.Get(ZoneBack).InBounds(msg):
		return m, func() tea.Msg { return BackMsg{} }
	case zone.Get(ZoneAdd).InBounds(msg):
		m.mode = modeChooser
		return m, nil
	case zone.Get(ZoneSubmit).InBounds(msg):
		return m.submit()
	}
	return m, nil
}

func (m Model) submit() (Model, tea.Cmd) {
	wf, cmd, err := m.wf.Submit()
	m.wf = wf
	if err != nil {
		// NoImageSelected comes with its own notice; the local guards are silent.
		log.Debug(log.CatUI, "submit refused", "reason", err)
		return m, cmd
	}
	return m, tea.Batch(cmd, m.startSpinner())
}

func (m Model) handleChoice(value string) (Model, tea.Cmd) {
	m.mode = modeMain
	switch value {
	case choiceCamera:
		if m.cfg.Camera == nil {
			return m.showNotice(workflow.NoticeMsg{Kind: workflow.SourceUnavailable, Source: source.KindCamera})
		}
		m.mode = modeCapturing
		var cmd tea.Cmd
		m.wf, cmd = m.wf.Acquire(source.KindCamera, m.cfg.Camera)
		return m, tea.Batch(cmd, m.startSpinner())
	case choiceLibrary:
		lib := m.cfg.Library
		return m, func() tea.Msg {
			return libraryAccessMsg{err: lib.Authorize(context.Background())}
		}
	}
	return m, nil
}

func (m Model) openLibrary(err error) (Model, tea.Cmd) {
	if err != nil {
		// Route through the workflow so denial and failure are reported uniformly.
		var cmd tea.Cmd
		m.wf, cmd = m.wf.Update(workflow.AcquiredMsg{Kind: source.KindLibrary, Err: err})
		return m, cmd
	}

	fp := filepicker.New()
	fp.CurrentDirectory = m.cfg.Library.Dir
	fp.AllowedTypes = photo.Extensions
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.Height = max(m.height-8, 3)
	fp.KeyMap.Back = key.NewBinding(key.WithKeys("h", "backspace", "left"), key.WithHelp("h", "up a directory"))
	m.files = fp
	m.mode = modeFiles
	return m, fp.Init()
}

func (m Model) updateFiles(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.Chooser.Abort) {
		// Leaving the picker without a file is a silent cancellation.
		m.mode = modeMain
		var cmd tea.Cmd
		m.wf, cmd = m.wf.Update(workflow.AcquiredMsg{Kind: source.KindLibrary, Err: source.ErrCancelled})
		return m, cmd
	}

	var cmd tea.Cmd
	m.files, cmd = m.files.Update(msg)
	if ok, path := m.files.DidSelectFile(msg); ok {
		m.mode = modeMain
		dir := filepath.Dir(path)
		var acquire tea.Cmd
		m.wf, acquire = m.wf.Acquire(source.KindLibrary, m.cfg.Library.Choice(path))
		return m, tea.Batch(acquire, func() tea.Msg { return LibraryUsedMsg{Dir: dir} })
	}
	if ok, path := m.files.DidSelectDisabledFile(msg); ok {
		var t tea.Cmd
		m.toaster, t = m.toaster.Show(filepath.Base(path)+" is not a supported image", toaster.StyleWarn, toaster.DefaultDuration)
		return m, tea.Batch(cmd, t)
	}
	return m, cmd
}

func (m Model) showNotice(n workflow.NoticeMsg) (Model, tea.Cmd) {
	text := noticeText(n)
	if n.Blocking {
		md := modal.New(modal.Config{Title: text.title, Message: text.body}).SetSize(m.width, m.height)
		m.notice = &md
		m.mode = modeMain
		return m, nil
	}
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(text.title, text.style, toaster.DefaultDuration)
	return m, cmd
}

// busy reports whether something is running that the spinner stands for.
func (m Model) busy() bool {
	if m.wf.Destroyed() {
		return false
	}
	_, submitting := m.wf.State().(workflow.Submitting)
	return submitting || m.mode == modeCapturing
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning || !m.busy() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}
