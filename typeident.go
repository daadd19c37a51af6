package codec

import (
	"fmt"
	"reflect"
	"strings"
)

// typeIdentifier returns the canonical wire name for rt: the configured
// alias if one exists, otherwise the fully dotted pkgPath+name for named
// types, otherwise a structural description built from the element types
// for slices, arrays, maps, and pointers.
func (c *Config) typeIdentifier(rt reflect.Type) string {
	if alias, ok := c.aliasByType[rt]; ok {
		return alias
	}
	if rt.PkgPath() != "" && rt.Name() != "" {
		return rt.PkgPath() + "." + rt.Name()
	}
	switch rt.Kind() {
	case reflect.Slice:
		return "[]" + c.typeIdentifier(rt.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", rt.Len(), c.typeIdentifier(rt.Elem()))
	case reflect.Map:
		return "map[" + c.typeIdentifier(rt.Key()) + "]" + c.typeIdentifier(rt.Elem())
	case reflect.Ptr:
		return "*" + c.typeIdentifier(rt.Elem())
	default:
		return rt.String()
	}
}

// resolveTypeIdentifier maps a wire type name back to a reflect.Type,
// honoring the alias table and parsing the slice, pointer, and map forms
// typeIdentifier can produce; fixed-size array identifiers ("[N]T") are not
// parsed and do not resolve. Unnamed non-structural types (e.g. anonymous
// structs) cannot be resolved this way and are not expected on the wire.
func (c *Config) resolveTypeIdentifier(id string) (reflect.Type, bool) {
	if rt, ok := c.typeByAlias[id]; ok {
		return rt, true
	}
	switch {
	case strings.HasPrefix(id, "[]"):
		elem, ok := c.resolveTypeIdentifier(id[2:])
		if !ok {
			return nil, false
		}
		return reflect.SliceOf(elem), true
	case strings.HasPrefix(id, "*"):
		elem, ok := c.resolveTypeIdentifier(id[1:])
		if !ok {
			return nil, false
		}
		return reflect.PtrTo(elem), true
	case strings.HasPrefix(id, "map["):
		rest := id[len("map["):]
		depth := 0
		for i, r := range rest {
			switch r {
			case '[':
				depth++
			case ']':
				if depth == 0 {
					keyID := rest[:i]
					valID := rest[i+1:]
					keyType, ok := c.resolveTypeIdentifier(keyID)
					if !ok {
						return nil, false
					}
					valType, ok := c.resolveTypeIdentifier(valID)
					if !ok {
						return nil, false
					}
					return reflect.MapOf(keyType, valType), true
				}
				depth--
			}
		}
		return nil, false
	}
	if rt, ok := c.registeredTypes[id]; ok {
		return rt, true
	}
	return nil, false
}
