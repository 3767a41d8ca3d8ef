package voiceroom

import (
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/route"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/atomic"
)

// Panel is the built content of a voice room route.
type Panel struct {
	Route route.Route
	Title string
	Body  string

	destroyed atomic.Bool
}

// Destroy marks the panel as torn down. Platforms wrapping a Panel release
// their own resources alongside.
func (p *Panel) Destroy() { p.destroyed.Store(true) }

func (p *Panel) Destroyed() bool { return p.destroyed.Load() }

// Resources reports whether the assets a route depends on are available.
type Resources interface {
	Ready(kind route.Kind) bool
}

// ResourceSet is a Resources backed by a set of kinds still loading.
type ResourceSet struct {
	mu      sync.Mutex
	loading map[route.Kind]bool
}

func NewResourceSet() *ResourceSet {
	return &ResourceSet{loading: make(map[route.Kind]bool)}
}

// Loading marks kind as not ready until Loaded is called.
func (s *ResourceSet) Loading(kind route.Kind) {
	s.mu.Lock()
	s.loading[kind] = true
	s.mu.Unlock()
}

func (s *ResourceSet) Loaded(kind route.Kind) {
	s.mu.Lock()
	delete(s.loading, kind)
	s.mu.Unlock()
}

func (s *ResourceSet) Ready(kind route.Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loading[kind]
}

// Factory builds localized panels for every voice room route.
type Factory struct {
	localizer *i18n.Localizer
	resources Resources
	logger    *slog.Logger
}

// NewFactory creates a factory. A nil resources treats everything as ready.
func NewFactory(localizer *i18n.Localizer, resources Resources, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{localizer: localizer, resources: resources, logger: logger}
}

// Build implements router.Factory. It reports false for routes whose
// resources are still loading and for routes it does not know.
func (f *Factory) Build(r route.Route) (*Panel, bool) {
	if f.resources != nil && !f.resources.Ready(r.Kind()) {
		f.logger.Debug("voiceroom: resources not ready", "route", r.Kind())
		return nil, false
	}

	switch r := r.(type) {
	case Alert:
		title := r.Title
		if title == "" {
			title = f.text("AlertDefaultTitle", nil, nil)
		}
		return &Panel{Route: r, Title: title, Body: r.Message}, true

	case Settings:
		return f.panel(r, "SettingsTitle", "SettingsBody", nil, nil), true

	case AudioEffects:
		return f.panel(r, "AudioEffectsTitle", "AudioEffectsBody", nil, nil), true

	case SeatManagement:
		return f.panel(r, "SeatManagementTitle", "SeatManagementBody", map[string]any{"Seat": r.Seat}, nil), true

	case UserManagement:
		name := r.Name
		if name == "" {
			name = r.UserID
		}
		return f.panel(r, "UserManagementTitle", "UserManagementBody", map[string]any{"User": name}, nil), true

	case Countdown:
		return f.panel(r, "CountdownTitle", "CountdownBody", map[string]any{"Count": r.Seconds}, r.Seconds), true

	case GiftPanel:
		return f.panel(r, "GiftPanelTitle", "GiftPanelBody", nil, nil), true

	default:
		f.logger.Warn("voiceroom: no panel for route", "route", r.Kind())
		return nil, false
	}
}

func (f *Factory) panel(r route.Route, titleID, bodyID string, data map[string]any, count any) *Panel {
	return &Panel{
		Route: r,
		Title: f.text(titleID, data, nil),
		Body:  f.text(bodyID, data, count),
	}
}

func (f *Factory) text(id string, data map[string]any, count any) string {
	if f.localizer == nil {
		return id
	}
	msg, err := f.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
		PluralCount:  count,
	})
	if err != nil {
		f.logger.Warn("voiceroom: missing translation", "id", id, "error", err)
		return id
	}
	return msg
}
