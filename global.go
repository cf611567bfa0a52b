package inline

import "sync"

// A small named registry stands in for the window-namespace attachment
// some consumers relied on. It is an explicit opt-in: nothing is
// registered unless Attach is called.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Widget)
)

// Attach registers w under name, replacing any previous registration.
func Attach(name string, w *Widget) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = w
}

// Detach removes the named registration, if any.
func Detach(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}

// Attached returns the widget registered under name.
func Attached(name string) (*Widget, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	w, ok := registry[name]
	return w, ok
}
