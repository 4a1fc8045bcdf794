// Package identity canonicalizes exercise names written inconsistently across
// trainer notes, generated plans, and historical logs.
//
// A Resolver owns an immutable alias table. Lookups are safe for concurrent
// use; Register publishes a new table copy and never mutates the old one.
package identity

import (
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
)

// Identity is the resolved form of one exercise name.
type Identity struct {
	CanonicalKey string
	DisplayName  string
}

type aliasTable struct {
	keys       map[string]string // normalized alias -> canonical key
	display    map[string]string // canonical key -> preferred display name
	implements map[string]string // canonical key -> normalized implement
}

func newAliasTable() *aliasTable {
	return &aliasTable{keys: map[string]string{}, display: map[string]string{}, implements: map[string]string{}}
}

func (t *aliasTable) clone() *aliasTable {
	c := newAliasTable()
	for k, v := range t.keys {
		c.keys[k] = v
	}
	for k, v := range t.display {
		c.display[k] = v
	}
	for k, v := range t.implements {
		c.implements[k] = v
	}
	return c
}

// Resolver resolves exercise names against an alias table.
type Resolver struct {
	table atomic.Pointer[aliasTable]
	mu    sync.Mutex // serializes Register
}

// Option configures a Resolver at construction.
type Option func(*resolverOptions)

type resolverOptions struct {
	groups      []AliasGroup
	swaps       map[string]string
	skipDefault bool
}

// WithAliasGroups adds alias groups on top of the built-in data.
func WithAliasGroups(groups ...AliasGroup) Option {
	return func(o *resolverOptions) { o.groups = append(o.groups, groups...) }
}

// WithSwaps adds a raw-name to display-name swap list. A swap target that is
// itself a known alias resolves through to that alias's canonical key.
func WithSwaps(swaps map[string]string) Option {
	return func(o *resolverOptions) {
		if o.swaps == nil {
			o.swaps = make(map[string]string, len(swaps))
		}
		for k, v := range swaps {
			o.swaps[k] = v
		}
	}
}

// WithoutDefaults drops the built-in alias groups. Used by tests that need a
// known-empty table.
func WithoutDefaults() Option {
	return func(o *resolverOptions) { o.skipDefault = true }
}

// NewResolver builds a resolver from the built-in alias groups plus any
// configured groups and swaps.
func NewResolver(opts ...Option) *Resolver {
	var o resolverOptions
	for _, opt := range opts {
		opt(&o)
	}

	t := newAliasTable()
	if !o.skipDefault {
		for _, g := range defaultAliasGroups {
			t.addGroup(g)
		}
	}
	for _, g := range o.groups {
		t.addGroup(g)
	}
	for raw, target := range o.swaps {
		t.addSwap(raw, target)
	}
	t.pinCanonicals()

	r := &Resolver{}
	r.table.Store(t)
	return r
}

func (t *aliasTable) addGroup(g AliasGroup) {
	key := normalize(g.Canonical)
	if key == "" {
		return
	}
	t.keys[key] = key
	t.display[key] = strings.TrimSpace(g.Canonical)
	if impl := normalize(g.Implement); impl != "" {
		t.implements[key] = impl
	}
	for _, a := range g.Aliases {
		if n := normalize(a); n != "" {
			t.keys[n] = key
		}
	}
}

func (t *aliasTable) addSwap(raw, target string) {
	from := normalize(raw)
	to := normalize(target)
	if from == "" || to == "" {
		return
	}
	if existing, ok := t.keys[to]; ok {
		to = existing
	} else {
		t.keys[to] = to
		t.display[to] = strings.TrimSpace(target)
	}
	t.keys[from] = to
}

// pinCanonicals makes every canonical key resolve to itself, which keeps
// canonicalization idempotent even when an alias collides with a canonical.
func (t *aliasTable) pinCanonicals() {
	for _, key := range t.keys {
		t.keys[key] = key
	}
}

// Register adds aliases for canonical at runtime. It is an explicit opt-in
// and is never called on the default request path.
func (r *Resolver) Register(canonical string, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.table.Load().clone()
	next.addGroup(AliasGroup{Canonical: canonical, Aliases: aliases})
	next.pinCanonicals()
	r.table.Store(next)
}

var trailingQualifier = regexp.MustCompile(`^(.+?)\s*\(([^()]+)\)$`)

// Resolve returns the canonical key and display name for name. Unknown names
// resolve to their own cleaned form and never fail.
func (r *Resolver) Resolve(name string) Identity {
	t := r.table.Load()
	key := normalize(name)
	if key == "" {
		return Identity{}
	}
	if canon, ok := t.keys[key]; ok {
		return Identity{CanonicalKey: canon, DisplayName: t.displayFor(canon, name)}
	}

	// Base + qualifier recomposition: "db lateral raise (lean-away)" resolves
	// its base through the table and keeps the qualifier.
	if m := trailingQualifier.FindStringSubmatch(key); m != nil {
		if base, ok := t.keys[m[1]]; ok {
			composite := base + " (" + m[2] + ")"
			if canon, ok := t.keys[composite]; ok {
				return Identity{CanonicalKey: canon, DisplayName: t.displayFor(canon, name)}
			}
			display := displayForm(name)
			if d, ok := t.display[base]; ok {
				if q := trailingQualifier.FindStringSubmatch(display); q != nil {
					display = d + " (" + q[2] + ")"
				}
			}
			return Identity{CanonicalKey: composite, DisplayName: display}
		}
	}

	return Identity{CanonicalKey: key, DisplayName: displayForm(name)}
}

func (t *aliasTable) displayFor(canon, raw string) string {
	if d, ok := t.display[canon]; ok {
		return d
	}
	return displayForm(raw)
}

// CanonicalKey returns the stable identity key for name.
func (r *Resolver) CanonicalKey(name string) string {
	return r.Resolve(name).CanonicalKey
}

// CanonicalName returns the preferred display name for name.
func (r *Resolver) CanonicalName(name string) string {
	return r.Resolve(name).DisplayName
}

// Category returns the body-part category of name, or "" if none applies.
func (r *Resolver) Category(name string) string {
	return categoryOf(r.CanonicalKey(name))
}

// IsHandHeld reports whether name is performed with a dumbbell or kettlebell.
// An implement written in the name itself wins ("Barbell Bulgarian Split
// Squat" is not hand-held); otherwise the alias group's implement decides,
// then the canonical key's own tokens.
func (r *Resolver) IsHandHeld(name string) bool {
	if impl := implementIn(tokens(normalize(name))); impl != "" {
		return isHandHeldImplement(impl)
	}
	key := r.CanonicalKey(name)
	if impl := r.table.Load().implementOf(key); impl != "" {
		return isHandHeldImplement(impl)
	}
	return isHandHeldImplement(implementIn(tokens(key)))
}

func (t *aliasTable) implementOf(key string) string {
	if impl, ok := t.implements[key]; ok {
		return impl
	}
	if m := trailingQualifier.FindStringSubmatch(key); m != nil {
		return t.implements[m[1]]
	}
	return ""
}

// IsMainLift reports whether name is a barbell-class competition or main lift.
func (r *Resolver) IsMainLift(name string) bool {
	if r.IsHandHeld(name) {
		return false
	}
	key := r.CanonicalKey(name)
	padded := " " + strings.NewReplacer("(", " ", ")", " ").Replace(key) + " "
	for _, q := range notMainQualifiers {
		if strings.Contains(padded, " "+q+" ") {
			return false
		}
	}
	for _, m := range mainLiftKeys {
		if strings.Contains(padded, " "+m+" ") {
			return true
		}
	}
	return false
}

// IsCarry reports whether name is a loaded carry.
func (r *Resolver) IsCarry(name string) bool {
	return r.Category(name) == CategoryCarry
}

var (
	defaultMu       sync.Mutex
	defaultResolver *Resolver
)

// Default returns the lazily built process-wide resolver holding only the
// built-in alias data. Callers that load configured aliases should construct
// their own resolver with NewResolver and pass it explicitly.
func Default() *Resolver {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultResolver == nil {
		defaultResolver = NewResolver()
	}
	return defaultResolver
}

// ResetDefault discards the process-wide resolver so the next Default call
// rebuilds it. Intended for test isolation.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultResolver = nil
}
