package engine

import "sort"

// registry holds all registered engines.
var registry = make(map[string]Engine)

// Register adds an engine to the registry.
// This is typically called from init() functions in backend packages.
func Register(e Engine) {
	registry[e.Name()] = e
}

// Get returns an engine by name, or nil if not found.
func Get(name string) Engine {
	return registry[name]
}

// List returns all registered engine names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByExtension finds an engine by file extension (including the dot).
// When several engines claim an extension the alphabetically first wins.
func ByExtension(ext string) Engine {
	for _, name := range List() {
		for _, e := range registry[name].Extensions() {
			if e == ext {
				return registry[name]
			}
		}
	}
	return nil
}
