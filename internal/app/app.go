package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/gateway"
	"github.com/abhisek/academy/internal/llm"
	"github.com/abhisek/academy/internal/progress"
	"github.com/abhisek/academy/internal/router"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/screens/curriculum"
	"github.com/abhisek/academy/internal/screens/dashboard"
	"github.com/abhisek/academy/internal/screens/lesson"
	"github.com/abhisek/academy/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Catalog *catalog.Catalog
	Gateway *gateway.Service

	// Store defaults to a fresh in-memory progress store.
	Store  *progress.Store
	Logger *zap.Logger

	// SessionID tags every generation call made by this run. A random id
	// is used when empty.
	SessionID string

	// LessonOptions are passed to the lesson screen.
	LessonOptions []lesson.Option
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	store   *progress.Store
	catalog *catalog.Catalog
	logger  *zap.Logger
	width   int
	height  int
}

// New wires the screens and the router.
func New(ctx context.Context, opts Options) AppModel {
	if opts.Store == nil {
		opts.Store = progress.NewStore()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Gateway == nil {
		opts.Gateway = gateway.NewService(nil, gateway.DefaultConfig(), opts.Logger)
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	ctx = llm.WithSession(ctx, opts.SessionID)

	screens := router.Screens{
		Dashboard:  dashboard.New(ctx, opts.Store, opts.Catalog, opts.Gateway),
		Curriculum: curriculum.New(opts.Store, opts.Catalog),
		Lesson:     lesson.New(ctx, opts.Gateway, opts.LessonOptions...),
	}

	return AppModel{
		router:  router.New(opts.Store, opts.Catalog, screens, opts.Logger),
		store:   opts.Store,
		catalog: opts.Catalog,
		logger:  opts.Logger.Named("app").With(zap.String("session", opts.SessionID)),
	}
}

func (m AppModel) Init() tea.Cmd {
	m.logger.Info("session started", zap.Int("lessons", m.catalog.Len()))
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !m.capturing() {
				return m, tea.Quit
			}
		case "esc":
			if !m.capturing() {
				if m.store.Navigation().View == progress.ViewDashboard {
					return m, nil
				}
				return m, func() tea.Msg { return router.BackMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// capturing reports whether the active screen owns the keyboard.
func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	p := m.store.Snapshot()
	header := layout.RenderHeader(title, p.Streak, p.Percent(m.catalog.Len()), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	return layout.RenderFrame(header, footer, m.width, m.height, m.router.View)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = append(hints, hp.KeyHints()...)
	}
	if m.capturing() {
		return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	return append(hints, layout.KeyHint{Key: "Q", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
