package inline

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/svgkit/inline/dom"
	"github.com/svgkit/inline/fetch"
	"github.com/svgkit/inline/internal/metrics"
	"github.com/svgkit/inline/observe"
	"github.com/svgkit/inline/sanitize"
)

// Widget manages lazy SVG inlining for a set of placeholder elements.
// Each element runs an independent pipeline; there is no shared state
// between them beyond the widget's fetch client and logger.
type Widget struct {
	opts     Options
	elements []dom.Element
	metrics  *metrics.Metrics

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	watchers []*observe.Watcher
	started  bool
	closed   bool

	// docMu serializes access to the parsed document. Fetches run
	// concurrently, but all pipelines of one widget read and mutate a
	// single shared tree; unsynchronized sibling swaps corrupt it.
	docMu sync.Mutex
}

// New creates a widget managing a single placeholder element. A nil
// element yields a widget that does nothing.
func New(el dom.Element, opts *Options) *Widget {
	var els []dom.Element
	if el != nil {
		els = []dom.Element{el}
	}
	return newWidget(els, opts)
}

// NewAll creates a widget managing every element of doc matched by
// selector. Zero matches is a silent no-op, not an error.
func NewAll(doc *goquery.Document, selector string, opts *Options) *Widget {
	var els []dom.Element
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if el := dom.FromSelection(s); el != nil {
			els = append(els, el)
		}
	})
	return newWidget(els, opts)
}

func newWidget(els []dom.Element, opts *Options) *Widget {
	ctx, cancel := context.WithCancel(context.Background())
	o := opts.withDefaults()
	return &Widget{
		opts:     o,
		elements: els,
		metrics:  metrics.New(o.Registerer),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Len reports how many placeholders the widget manages.
func (w *Widget) Len() int {
	return len(w.elements)
}

// Start registers a visibility watcher per element. Calling Start
// again is a no-op. Elements that never become visible are never
// fetched.
func (w *Widget) Start() {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.mu.Unlock()

	for _, el := range w.elements {
		watcher := observe.Watch(w.opts.Observer, el, w.opts.Threshold, func() {
			// A visibility report can arrive after Close when an
			// observer snapshotted its registrations; refuse to
			// launch once the widget is closed.
			w.mu.Lock()
			if w.closed {
				w.mu.Unlock()
				return
			}
			w.wg.Add(1)
			w.mu.Unlock()
			go w.process(el)
		})
		w.mu.Lock()
		w.watchers = append(w.watchers, watcher)
		w.mu.Unlock()
	}
}

// Wait blocks until every triggered pipeline has finished. Watchers
// that have not triggered are not waited for.
func (w *Widget) Wait() {
	w.wg.Wait()
}

// Close stops all watchers, cancels in-flight fetches, and waits for
// pipelines to wind down. The widget cannot be restarted.
func (w *Widget) Close() {
	w.mu.Lock()
	w.closed = true
	watchers := w.watchers
	w.watchers = nil
	w.mu.Unlock()

	for _, watcher := range watchers {
		watcher.Stop()
	}
	w.cancel()
	w.wg.Wait()
}

// process runs one element's pipeline: loading class on, fetch,
// sanitize, swap, loading class off. The class removal is guaranteed
// on every path so no placeholder is left visually stuck in loading.
func (w *Widget) process(el dom.Element) {
	defer w.wg.Done()

	logger := w.opts.Logger.With(zap.String("pipeline", uuid.NewString()))

	var (
		src   string
		ok    bool
		rules sanitize.Rules
	)
	w.withDocument(func() {
		el.AddClass(w.opts.LoadingClass)
		src, ok = el.Attr(AttrSrc)
		rules = w.rulesFor(el)
	})
	defer w.withDocument(func() {
		el.RemoveClass(w.opts.LoadingClass)
	})

	if !ok || src == "" {
		logger.Debug("placeholder has no source attribute")
		return
	}
	logger = logger.With(zap.String("src", src))

	text, err := w.opts.Client.FetchText(w.ctx, src)
	if err != nil {
		w.observeFetchFailure(logger, err)
		return
	}
	w.metrics.IncFetch(metrics.OutcomeOK)

	root, err := sanitize.Inline(text, rules)
	if err != nil {
		w.metrics.IncSanitizeFailure()
		logger.Error("svg sanitization failed", zap.Error(err))
		return
	}

	var replaced bool
	w.withDocument(func() {
		replaced = el.Replace(root)
	})
	if !replaced {
		logger.Debug("placeholder detached, substitution abandoned")
		return
	}
	w.metrics.IncSubstitution()
	logger.Debug("placeholder replaced with inline svg")
}

// withDocument runs fn while holding the document lock.
func (w *Widget) withDocument(fn func()) {
	w.docMu.Lock()
	defer w.docMu.Unlock()
	fn()
}

// observeFetchFailure classifies a fetch error: non-ok statuses skip
// the element quietly, transport failures go to the error channel,
// and teardown cancellations are not failures at all.
func (w *Widget) observeFetchFailure(logger *zap.Logger, err error) {
	var statusErr *fetch.StatusError
	switch {
	case errors.As(err, &statusErr):
		w.metrics.IncFetch(metrics.OutcomeStatus)
		logger.Debug("svg source returned non-ok status", zap.Int("status", statusErr.Code))
	case errors.Is(err, context.Canceled):
		logger.Debug("svg fetch cancelled")
	default:
		w.metrics.IncFetch(metrics.OutcomeError)
		logger.Error("svg fetch failed", zap.Error(err))
	}
}

// rulesFor builds the sanitization rules declared by the element's
// data attributes combined with the widget options.
func (w *Widget) rulesFor(el dom.Element) sanitize.Rules {
	rules := sanitize.Rules{
		Strict: w.opts.Strict,
		Policy: w.opts.Policy,
	}
	if v, ok := el.Attr(AttrRemoveAttrs); ok {
		rules.RemoveAttrs = sanitize.ParseRemoveList(v)
	}
	if v, ok := el.Attr(AttrAddAttrs); ok {
		rules.AddAttrs = sanitize.ParseAddList(v)
	}
	rules.RemoveScripts = boolAttr(el, AttrRemoveScripts)

	if boolAttr(el, AttrSetSize) {
		bounds := el.Bounds()
		if bounds.W > 0 {
			rules.Width = formatDimension(bounds.W)
		}
		if bounds.H > 0 {
			rules.Height = formatDimension(bounds.H)
		}
	}
	return rules
}

// boolAttr reads a boolean data attribute. A bare attribute counts as
// true; anything unparseable counts as false.
func boolAttr(el dom.Element, name string) bool {
	v, ok := el.Attr(name)
	if !ok {
		return false
	}
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

func formatDimension(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
