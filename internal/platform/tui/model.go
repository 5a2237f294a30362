package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-galaxy/internal/config"
	"github.com/vovakirdan/tui-galaxy/internal/core"
	"github.com/vovakirdan/tui-galaxy/internal/galaxy"
	"github.com/vovakirdan/tui-galaxy/internal/raster"
	"github.com/vovakirdan/tui-galaxy/internal/storage"
	"github.com/vovakirdan/tui-galaxy/internal/viewer"
)

// DefaultSupersample is the number of device pixels per cell column.
const DefaultSupersample = 2

// footerHeight is the number of rows taken by the status line.
const footerHeight = 1

// Options configures a viewer model beyond the terminal size.
type Options struct {
	Engine      galaxy.Config
	Catalog     *config.Catalog // Defaults to the built-in palettes
	Jump        viewer.Jump
	Supersample int
	Store       *storage.Store // Optional, records the session on quit
	Mode        string         // Session mode recorded in the store
	User        string
	Logger      *log.Logger
	Renderer    *lipgloss.Renderer // Defaults to stdout
	Clock       core.Clock
	Viewers     *ViewerRegistry // Shown in the status line when set
}

var (
	statusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#3C0096")).
			Padding(0, 1)

	helpTextColor  = core.Color{R: 230, G: 230, B: 230, A: 1}
	helpPanelColor = core.Color{R: 20, G: 0, B: 40, A: 1}
)

const (
	// helpPanelWidth fits the longest "key  description" line.
	helpPanelWidth = 26

	// helpPanelTint is how far the panel pulls the galaxy toward its colour.
	helpPanelTint = 0.85
)

// Model is the Bubble Tea model for the galaxy viewer.
type Model struct {
	stage    *viewer.Stage
	ctrl     *viewer.Controller
	screen   *core.Screen
	renderer *Renderer
	keys     KeyMap
	help     help.Model
	opts     Options
	config   core.RuntimeConfig
	started  time.Time
	quitting bool
}

// NewModel creates a viewer for a terminal of cfg.ScreenW x cfg.ScreenH cells.
func NewModel(cfg core.RuntimeConfig, o Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if o.Supersample < 1 {
		o.Supersample = DefaultSupersample
	}
	if o.Catalog == nil {
		o.Catalog = config.NewCatalog(config.DefaultFile().Palettes, nil)
	}
	if o.Jump.Duration <= 0 {
		o.Jump = viewer.DefaultJump()
	}
	if o.Clock == nil {
		o.Clock = core.SystemClock{}
	}

	cols, rows := viewSize(cfg.ScreenW, cfg.ScreenH)
	width, height, ratio := viewer.CellViewport(cols, rows, o.Supersample)

	var first *config.LevelPalette
	if o.Catalog.Len() > 0 {
		p := o.Catalog.At(0)
		first = &p
	}

	stage := viewer.NewStage(viewer.StageOptions{
		Width:   width,
		Height:  height,
		Ratio:   ratio,
		Engine:  o.Engine,
		Palette: first,
		Seed:    cfg.Seed,
		// Half a cell column keeps distant stars visible after downsampling.
		MinDot: float64(o.Supersample) / 2,
		Logger: o.Logger,
		Clock:  o.Clock,
	})

	ctrl := viewer.NewController(stage.Engine, o.Catalog, o.Jump, o.Logger)
	ctrl.Watch(stage.Window)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		stage:    stage,
		ctrl:     ctrl,
		screen:   core.NewScreen(cols, rows),
		renderer: NewRenderer(o.Renderer),
		keys:     DefaultKeyMap(),
		help:     h,
		opts:     o,
		config:   cfg,
		started:  o.Clock.Now(),
	}
}

// viewSize returns the cell grid left for the galaxy after the footer.
func viewSize(w, h int) (cols, rows int) {
	return core.Max(w, 1), core.Max(h-footerHeight, 1)
}

// Init starts the engine and the tick loop.
func (m Model) Init() tea.Cmd {
	m.ctrl.Start()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if m.quitting {
			return m, nil
		}
		m.stage.Pump(time.Time(msg))
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		if _, err := m.SaveScreenshot(""); err != nil {
			m.warn("screenshot failed", "error", err)
		}
		return m, nil
	}

	if m.ctrl.Apply(m.keys.Action(msg)) {
		return m.quit()
	}
	return m, nil
}

// handleResize processes window resize events. The engine rebuilds the
// scene when the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	cols, rows := viewSize(msg.Width, msg.Height)
	m.screen.Resize(cols, rows)
	m.stage.Resize(viewer.CellViewport(cols, rows, m.opts.Supersample))
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.saveSession()
	m.stage.Close()
	return m, tea.Quit
}

// saveSession records the session in the store, if any.
func (m Model) saveSession() {
	if m.opts.Store == nil {
		return
	}
	mode := m.opts.Mode
	if mode == "" {
		mode = "tui"
	}
	_, err := m.opts.Store.SaveSession(storage.SessionEntry{
		Mode:     mode,
		User:     m.opts.User,
		Levels:   m.ctrl.Changes(),
		Duration: int(m.opts.Clock.Now().Sub(m.started).Seconds()),
	})
	if err != nil {
		m.warn("could not save session", "error", err)
	}
}

func (m Model) warn(msg string, keyvals ...any) {
	if m.opts.Logger != nil {
		m.opts.Logger.Warn(msg, keyvals...)
	}
}

// SaveScreenshot writes the current canvas as PNG into dir
// (~/.galaxy/screenshots when empty) and returns the file path.
func (m Model) SaveScreenshot(dir string) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		dir = filepath.Join(home, ".galaxy", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	timestamp := m.opts.Clock.Now().Format("20060102_150405")
	filename := fmt.Sprintf("galaxy_level%d_%s.png", m.ctrl.Level().Level, timestamp)
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("cannot create screenshot: %w", err)
	}
	defer f.Close()

	if err := raster.WritePNG(f, m.stage.Image()); err != nil {
		return "", err
	}
	return path, nil
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Controller returns the viewer controller.
func (m Model) Controller() *viewer.Controller {
	return m.ctrl
}

// Stage returns the viewer stage.
func (m Model) Stage() *viewer.Stage {
	return m.stage
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	img := raster.Downsample(m.stage.Image(), m.screen.Width(), 2*m.screen.Height())
	PaintImage(m.screen, img)
	if m.ctrl.ShowHelp() {
		m.drawHelpOverlay()
	}

	return m.renderer.RenderScreen(m.screen) + "\n" + m.footer()
}

// footer renders the status line and short help, clipped to the terminal width.
func (m Model) footer() string {
	status := m.ctrl.Status()
	if m.opts.Viewers != nil {
		status += fmt.Sprintf("  %d watching", m.opts.Viewers.Count())
	}
	line := statusStyle.Render(status) + " " + m.help.View(m.keys)
	return lipgloss.NewStyle().MaxWidth(m.config.ScreenW).Render(line)
}

// drawHelpOverlay draws a centered panel listing every key binding.
func (m Model) drawHelpOverlay() {
	groups := m.keys.FullHelp()
	rows := 4 // Title, blank line, blank line, close hint
	for _, g := range groups {
		rows += len(g)
	}

	panel := core.NewRect((m.screen.Width()-helpPanelWidth)/2, 1, helpPanelWidth, rows)
	TintRect(m.screen, panel, helpPanelColor, helpPanelTint)
	m.screen.DrawTextCentered(panel.Y, "Keys", helpTextColor)

	y := panel.Y + 2
	for _, group := range groups {
		for _, b := range group {
			h := b.Help()
			m.screen.DrawText(panel.X+2, y, fmt.Sprintf("%-8s %s", h.Key, h.Desc), helpTextColor)
			y++
		}
	}
	m.screen.DrawText(panel.X+2, y+1, "? to close", helpTextColor)
}

// Run starts the Bubble Tea program with a new viewer model.
func Run(cfg core.RuntimeConfig, o Options) error {
	model := NewModel(cfg, o)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
