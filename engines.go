package trackmeta

import (
	_ "github.com/simonhull/trackmeta/internal/native/gotag"        // Register pure-Go engine
	_ "github.com/simonhull/trackmeta/internal/native/libkatatsuki" // Register native engine (katatsuki build tag)
	"github.com/simonhull/trackmeta/internal/registry"
)

// Engines returns the names of the compiled-in tag engines.
func Engines() []string {
	return registry.Names()
}

// DefaultEngine returns the name of the engine used when no WithEngine or
// WithLibrary option is given.
func DefaultEngine() string {
	_, name, err := registry.Default()
	if err != nil {
		return ""
	}
	return name
}
