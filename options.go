package inline

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/svgkit/inline/fetch"
	"github.com/svgkit/inline/observe"
)

// Placeholder data attributes recognized by the widget.
const (
	AttrSrc           = "data-src"
	AttrRemoveAttrs   = "data-remove-attrs"
	AttrAddAttrs      = "data-add-attrs"
	AttrSetSize       = "data-set-size"
	AttrRemoveScripts = "data-remove-scripts"
)

// DefaultLoadingClass is applied to a placeholder while its fetch is
// in flight.
const DefaultLoadingClass = "svg-loading"

// Options configures a Widget. The zero value (or nil) selects eager
// visibility, a shared default fetch client, and a no-op logger.
type Options struct {
	// LoadingClass is the CSS class applied during loading.
	LoadingClass string

	// Observer decides when a placeholder is visible enough to load.
	// Defaults to observe.Immediate.
	Observer observe.Observer

	// Threshold is the visible-area fraction that triggers loading.
	// Zero means observe.DefaultThreshold.
	Threshold float64

	// Client fetches SVG sources. Defaults to fetch.New().
	Client *fetch.Client

	// Logger receives fetch and sanitization diagnostics. Defaults to
	// a no-op logger.
	Logger *zap.Logger

	// Strict widens on* attribute stripping to all descendants when a
	// placeholder asks for script removal.
	Strict bool

	// Policy, when set, runs a bluemonday allow-list pass over every
	// fetched document before the transformation steps.
	Policy *bluemonday.Policy

	// Registerer, when set, enables Prometheus pipeline counters.
	Registerer prometheus.Registerer
}

func (o *Options) withDefaults() Options {
	var opts Options
	if o != nil {
		opts = *o
	}
	if opts.LoadingClass == "" {
		opts.LoadingClass = DefaultLoadingClass
	}
	if opts.Observer == nil {
		opts.Observer = observe.Immediate{}
	}
	if opts.Client == nil {
		opts.Client = fetch.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}
