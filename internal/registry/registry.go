// Package registry manages the tag engines available to the library.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/simonhull/trackmeta/internal/native"
)

// preferred lists engines in the order Default tries them. The native
// engine wins when it is compiled in.
var preferred = []string{"katatsuki", "gotag"}

// engines maps names to engine instances.
var engines = make(map[string]native.Library)

// Register registers an engine under name.
// This is called by engine packages during initialization (init functions).
func Register(name string, lib native.Library) {
	engines[name] = lib
}

// Get returns the engine registered under name.
func Get(name string) (native.Library, error) {
	lib, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown tag engine %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return lib, nil
}

// Default returns the most preferred registered engine and its name.
func Default() (native.Library, string, error) {
	for _, name := range preferred {
		if lib, ok := engines[name]; ok {
			return lib, name, nil
		}
	}
	names := Names()
	if len(names) == 0 {
		return nil, "", fmt.Errorf("no tag engine registered")
	}
	// Fall back to any registered engine, deterministically
	return engines[names[0]], names[0], nil
}

// Names returns the registered engine names in sorted order.
func Names() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
