package input

import (
	"context"
	"log/slog"
)

// Handler reacts to one routed event
type Handler func(ctx context.Context, ev Event) error

type routeKey struct {
	kind Kind
	key  Key
	mods Mods
}

// Router maps event kind, key and modifiers to handlers
type Router struct {
	routes map[routeKey]Handler
	log    *slog.Logger
}

// NewRouter creates an empty router
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		routes: make(map[routeKey]Handler),
		log:    logger,
	}
}

// Handle registers h for pointer events of kind with exactly mods held
func (r *Router) Handle(kind Kind, mods Mods, h Handler) {
	r.routes[routeKey{kind: kind, mods: mods}] = h
}

// HandleKey registers h for key with exactly mods held
func (r *Router) HandleKey(key Key, mods Mods, h Handler) {
	r.routes[routeKey{kind: KeyPress, key: key, mods: mods}] = h
}

// Lookup finds the handler for ev. An exact modifier match wins. Pointer
// events with Shift held then use the Shift binding whatever else is held.
// Otherwise the unmodified binding is used. Key bindings that need a
// modifier never fire without it.
func (r *Router) Lookup(ev Event) (Handler, bool) {
	k := routeKey{kind: ev.Kind, key: ev.Key, mods: ev.Mods}
	if h, ok := r.routes[k]; ok {
		return h, true
	}
	if ev.Kind != KeyPress && ev.Mods.Has(ModShift) {
		k.mods = ModShift
		if h, ok := r.routes[k]; ok {
			return h, true
		}
	}
	k.mods = ModNone
	h, ok := r.routes[k]
	return h, ok
}

// Dispatch runs the handler bound to ev. Unbound events are ignored.
func (r *Router) Dispatch(ctx context.Context, ev Event) error {
	h, ok := r.Lookup(ev)
	if !ok {
		r.log.Debug("unbound event", "kind", ev.Kind, "key", ev.Key, "mods", ev.Mods)
		return nil
	}
	return h(ctx, ev)
}
