package codec

import (
	"reflect"
	"strings"

	"github.com/typeforge/codec/wire"
)

// Config is queried but never mutated during encode/decode, mirroring
// spec's read-only-after-bootstrap configuration object. It is built once
// via functional options (the pattern the retrieved herald package uses for
// its pipeline Option[T] construction) and then shared across every call on
// a Core.
type Config struct {
	Naming wire.Naming

	aliasByType map[reflect.Type]string
	typeByAlias map[string]reflect.Type

	// registeredTypes lets resolveTypeIdentifier map a wire name back to a
	// reflect.Type for named types that can't be rebuilt structurally.
	registeredTypes map[string]reflect.Type

	allowedPackages map[string]bool
	allowedTypes    map[reflect.Type]bool

	// proxies redirects a concrete implementation type to the wire identity
	// of a public/abstract surrogate type it should encode as.
	proxies map[reflect.Type]string

	// defaultConcrete maps an abstract collection interface to the concrete
	// type the decoder should instantiate when the declared field type is
	// that interface.
	defaultConcrete map[reflect.Type]reflect.Type

	renameCollision func(name string) string

	gzipByteStream bool
}

// Option configures a Config at Core construction time.
type Option func(*Config)

func newConfig(naming wire.Naming, opts ...Option) *Config {
	c := &Config{
		Naming:          naming,
		aliasByType:     make(map[reflect.Type]string),
		typeByAlias:     make(map[string]reflect.Type),
		registeredTypes: make(map[string]reflect.Type),
		allowedPackages: make(map[string]bool),
		allowedTypes:    make(map[reflect.Type]bool),
		proxies:         make(map[reflect.Type]string),
		defaultConcrete: make(map[reflect.Type]reflect.Type),
		renameCollision: func(name string) string { return "_" + name },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithAllowedPackage permits every type whose package path equals pkg, or
// lies beneath it (starts with pkg + "/"), as a decode target, satisfying
// the security gate in §4.2.
func WithAllowedPackage(pkg string) Option {
	return func(c *Config) { c.allowedPackages[pkg] = true }
}

// WithAllowedType permits rt as a decode target regardless of package.
func WithAllowedType(rt reflect.Type) Option {
	return func(c *Config) { c.allowedTypes[rt] = true }
}

// WithAlias registers a short wire name for rt, used in both directions:
// encode writes the alias, decode accepts the alias or the dotted name.
func WithAlias(rt reflect.Type, alias string) Option {
	return func(c *Config) {
		c.aliasByType[rt] = alias
		c.typeByAlias[alias] = rt
	}
}

// WithDefaultConcrete registers the concrete type the decoder instantiates
// when the declared field type is the abstract interface.
func WithDefaultConcrete(abstract, concrete reflect.Type) Option {
	return func(c *Config) { c.defaultConcrete[abstract] = concrete }
}

// WithTypeProxy redirects concrete to the wire identity of surrogate: values
// whose dynamic type is concrete are tagged with surrogate, while their
// payload is still written by concrete's own codec.
func WithTypeProxy(concrete reflect.Type, surrogate string) Option {
	return func(c *Config) { c.proxies[concrete] = surrogate }
}

// WithRenameCollision overrides the field-name collision policy used by the
// product codec builder. The default prepends an underscore and reapplies
// until the name is unique.
func WithRenameCollision(f func(name string) string) Option {
	return func(c *Config) { c.renameCollision = f }
}

// WithGzipByteStream wraps Byte-format streams in gzip, a feature the Java
// source exposed as a configuration knob rather than a distinct wire form.
func WithGzipByteStream() Option {
	return func(c *Config) { c.gzipByteStream = true }
}

func (c *Config) registerAlias(rt reflect.Type, alias string) {
	c.aliasByType[rt] = alias
	c.typeByAlias[alias] = rt
}

func (c *Config) registerNamed(id string, rt reflect.Type) {
	c.registeredTypes[id] = rt
}

// isAllowed implements the allow-list gate: a type passes if it is
// explicitly allow-listed or if its package path is allow-listed.
func (c *Config) isAllowed(rt reflect.Type) bool {
	if c.allowedTypes[rt] {
		return true
	}
	pkg := rt.PkgPath()
	if pkg == "" {
		// Unnamed composite types carry no package path of their own, so
		// they pass only if their element (and key) types pass.
		switch rt.Kind() {
		case reflect.Slice, reflect.Array, reflect.Ptr:
			return c.isAllowed(rt.Elem())
		case reflect.Map:
			return c.isAllowed(rt.Key()) && c.isAllowed(rt.Elem())
		}
		// Builtins (int, string, []byte, ...) have no package path and are
		// always reachable only through bootstrap-registered codecs, which
		// implicitly allow-list them.
		return true
	}
	if c.allowedPackages[pkg] {
		return true
	}
	// A package is allow-listed by prefix so "example.com/app" covers
	// "example.com/app/internal" the way a Java package allow-list covers
	// sub-packages only when listed explicitly; Go has no sub-package
	// nesting semantics, so prefix matching on the slash-delimited path is
	// the closest equivalent.
	for allowed := range c.allowedPackages {
		if strings.HasPrefix(pkg, allowed+"/") {
			return true
		}
	}
	return false
}

func (c *Config) proxyFor(rt reflect.Type) (string, bool) {
	id, ok := c.proxies[rt]
	return id, ok
}

func (c *Config) defaultConcreteFor(abstract reflect.Type) (reflect.Type, bool) {
	rt, ok := c.defaultConcrete[abstract]
	return rt, ok
}
