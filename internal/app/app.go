// Package app contains the root application model.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/petsense/internal/classify"
	"github.com/zjrosen/petsense/internal/config"
	"github.com/zjrosen/petsense/internal/keys"
	"github.com/zjrosen/petsense/internal/log"
	"github.com/zjrosen/petsense/internal/source"
	"github.com/zjrosen/petsense/internal/ui/help"
	"github.com/zjrosen/petsense/internal/ui/home"
	"github.com/zjrosen/petsense/internal/ui/logoverlay"
	"github.com/zjrosen/petsense/internal/ui/recognition"
	"github.com/zjrosen/petsense/internal/ui/toaster"
	"github.com/zjrosen/petsense/internal/workflow"
)

// Screen identifies the active screen.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenRecognition
)

func (s Screen) String() string {
	if s == ScreenRecognition {
		return "recognition"
	}
	return "home"
}

// Options are the collaborators the root model hands to its screens.
type Options struct {
	Config     config.Config
	ConfigPath string
	Classifier classify.Classifier
	Library    source.Library
	Camera     source.Provider
	// Clock drives the readiness gate; nil uses the wall clock.
	Clock workflow.Clock
	// Tracer records workflow spans; nil records nothing.
	Tracer trace.Tracer
	// Debug enables the log overlay (ctrl+x).
	Debug bool
	// MarkdownStyle is the glamour style of the help overlay.
	MarkdownStyle string
}

type libraryDirSavedMsg struct {
	dir string
	err error
}

var toggleLogs = key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "logs"))

// Model is the root application state.
type Model struct {
	opts   Options
	screen Screen

	home        home.Model
	recognition recognition.Model

	// Centralized toaster for app-level notices; screens own their own.
	toaster  toaster.Model
	help     help.Model
	showHelp bool

	logOverlay  logoverlay.Model
	logListener *log.Listener
	logCancel   context.CancelFunc

	width  int
	height int
}

// New creates the root model on the home screen.
func New(opts Options) Model {
	m := Model{
		opts:       opts,
		screen:     ScreenHome,
		home:       home.New(),
		toaster:    toaster.New(),
		help:       help.New(opts.MarkdownStyle),
		logOverlay: logoverlay.New(),
	}
	if opts.Debug {
		ctx, cancel := context.WithCancel(context.Background())
		if l := log.NewListener(ctx); l != nil {
			m.logListener = l
			m.logCancel = cancel
		} else {
			cancel()
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.logListener != nil {
		return m.logListener.Listen()
	}
	return nil
}

// Screen returns the active screen.
func (m Model) Screen() Screen { return m.screen }

// Recognition returns the recognition screen; it is only meaningful while
// Screen() is ScreenRecognition.
func (m Model) Recognition() recognition.Model { return m.recognition }

// LibraryDir returns the directory the library picker opens in.
func (m Model) LibraryDir() string { return m.opts.Library.Dir }

// Close releases background work: the open workflow and the log listener.
func (m Model) Close() Model {
	if m.screen == ScreenRecognition {
		m.recognition = m.recognition.Destroy()
	}
	if m.logCancel != nil {
		m.logCancel()
		m.logCancel = nil
	}
	return m
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.home = m.home.SetSize(msg.Width, msg.Height)
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.logOverlay = m.logOverlay.SetSize(msg.Width, msg.Height)
		if m.screen == ScreenRecognition {
			m.recognition = m.recognition.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case log.Event:
		m.logOverlay = m.logOverlay.Append(msg.Payload)
		return m, m.logListener.Listen()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.Close(), tea.Quit
		}
		if m.opts.Debug && key.Matches(msg, toggleLogs) {
			m.logOverlay = m.logOverlay.Toggle()
			return m, nil
		}
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}
		if m.showHelp {
			if key.Matches(msg, keys.Home.Help) || msg.Type == tea.KeyEsc {
				m.showHelp = false
			}
			return m, nil
		}
		if key.Matches(msg, keys.Home.Help) {
			m.showHelp = true
			return m, nil
		}
		if m.screen == ScreenHome && key.Matches(msg, keys.Home.Quit) {
			return m.Close(), tea.Quit
		}

	case home.OpenRecognitionMsg:
		return m.openRecognition()

	case recognition.BackMsg:
		return m.closeRecognition(), nil

	case recognition.LibraryUsedMsg:
		return m.rememberLibraryDir(msg.Dir)

	case libraryDirSavedMsg:
		if msg.err != nil {
			log.Warn(log.CatConfig, "could not save library dir", "dir", msg.dir, "error", msg.err)
			var cmd tea.Cmd
			m.toaster, cmd = m.toaster.Show("Could not save the library folder", toaster.StyleWarn, toaster.DefaultDuration)
			return m, cmd
		}
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
	}

	var cmd tea.Cmd
	switch m.screen {
	case ScreenRecognition:
		m.recognition, cmd = m.recognition.Update(msg)
	default:
		m.home, cmd = m.home.Update(msg)
	}
	return m, cmd
}

func (m Model) openRecognition() (Model, tea.Cmd) {
	log.Info(log.CatUI, "switching screen", "from", m.screen, "to", ScreenRecognition)
	m.recognition = recognition.New(recognition.Config{
		Workflow: workflow.Config{
			Classifier:    m.opts.Classifier,
			Gate:          m.opts.Config.Workflow.Gate,
			FrameInterval: m.opts.Config.Workflow.FrameInterval,
			Clock:         m.opts.Clock,
			Tracer:        m.opts.Tracer,
		},
		Library:        m.opts.Library,
		Camera:         m.opts.Camera,
		ShowTip:        m.opts.Config.UI.ShowTip,
		ShowDisclaimer: m.opts.Config.UI.ShowDisclaimer,
	}).SetSize(m.width, m.height)
	m.screen = ScreenRecognition
	return m, m.recognition.Init()
}

// closeRecognition tears down the workflow so no timer or request outlives
// the screen.
func (m Model) closeRecognition() Model {
	log.Info(log.CatUI, "switching screen", "from", m.screen, "to", ScreenHome)
	m.recognition = m.recognition.Destroy()
	m.screen = ScreenHome
	return m
}

func (m Model) rememberLibraryDir(dir string) (Model, tea.Cmd) {
	if dir == "" || dir == m.opts.Library.Dir {
		return m, nil
	}
	m.opts.Library.Dir = dir
	m.opts.Config.Source.LibraryDir = dir
	if m.opts.ConfigPath == "" {
		return m, nil
	}
	path := m.opts.ConfigPath
	return m, func() tea.Msg {
		return libraryDirSavedMsg{dir: dir, err: config.SaveLibraryDir(path, dir)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var view string
	switch m.screen {
	case ScreenRecognition:
		view = m.recognition.View()
	default:
		view = m.home.View()
	}

	if m.showHelp {
		view = m.help.Overlay(view)
	}
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	if m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}
	return zone.Scan(view)
}
