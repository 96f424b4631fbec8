package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/ch1tg/GameTrackr-web/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded HTML templates. Pages are buffered before
// writing so a mid-render failure becomes a clean 500 instead of a torn
// response.
type Renderer struct {
	tpl    *template.Template
	logger *slog.Logger
}

// NewRenderer parses all embedded templates.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	tpl, err := template.New("").Funcs(template.FuncMap{
		"metacritic": func(m *int) string {
			if m == nil {
				return "–"
			}
			return fmt.Sprintf("%d", *m)
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tpl: tpl, logger: logger}, nil
}

// Render writes the named template with the given status code.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error("template render failed",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// baseData is shared by every page template.
type baseData struct {
	User        *domain.User
	SearchTerm  string
	CurrentPath string
}

func newBaseData(r *http.Request) baseData {
	sess := SessionFrom(r.Context())
	return baseData{
		User:        sess.Session.User(),
		CurrentPath: r.URL.Path,
	}
}

// OrderingOption is one entry of the home feed sort selector.
type OrderingOption struct {
	Value, Label string
}

// PlatformFilter is one entry of the home feed platform selector; Value is
// the RAWG parent-platform id, empty for all platforms.
type PlatformFilter struct {
	Value, Label string
}

var orderingOptions = []OrderingOption{
	{domain.OrderingAdded, "Trending"},
	{domain.OrderingMetacritic, "Metacritic"},
	{domain.OrderingReleased, "Release date"},
	{domain.OrderingRating, "Rating"},
}

var platformFilters = []PlatformFilter{
	{"", "All platforms"},
	{"4", "PC"},
	{"187", "PlayStation 5"},
	{"186", "Xbox Series S/X"},
	{"7", "Nintendo Switch"},
}
