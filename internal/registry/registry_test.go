package registry

import (
	"slices"
	"strings"
	"testing"

	"github.com/simonhull/trackmeta/internal/native"
	"github.com/simonhull/trackmeta/internal/native/nativetest"
)

// withEngines swaps the global table for the duration of a test.
func withEngines(t *testing.T, m map[string]native.Library) {
	t.Helper()
	saved := engines
	engines = m
	t.Cleanup(func() { engines = saved })
}

func TestRegisterAndGet(t *testing.T) {
	withEngines(t, map[string]native.Library{})

	lib := nativetest.NewLibrary()
	Register("test", lib)

	got, err := Get("test")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != lib {
		t.Error("Get() returned a different engine")
	}
}

func TestGet_Unregistered(t *testing.T) {
	withEngines(t, map[string]native.Library{})
	Register("gotag", nativetest.NewLibrary())

	_, err := Get("nope")
	if err == nil {
		t.Fatal("Get() of unknown engine should fail")
	}
	if !strings.Contains(err.Error(), `"nope"`) || !strings.Contains(err.Error(), "gotag") {
		t.Errorf("error %q should name the engine and the available ones", err)
	}
}

func TestRegister_Overwrites(t *testing.T) {
	withEngines(t, map[string]native.Library{})

	first := nativetest.NewLibrary()
	second := nativetest.NewLibrary()
	Register("x", first)
	Register("x", second)

	got, _ := Get("x")
	if got != second {
		t.Error("second registration should win")
	}
}

func TestDefault_Preference(t *testing.T) {
	cgo := nativetest.NewLibrary()
	pure := nativetest.NewLibrary()

	tests := []struct {
		name     string
		engines  map[string]native.Library
		wantName string
		wantErr  bool
	}{
		{"native preferred", map[string]native.Library{"katatsuki": cgo, "gotag": pure}, "katatsuki", false},
		{"pure fallback", map[string]native.Library{"gotag": pure}, "gotag", false},
		{"any other", map[string]native.Library{"zeta": pure, "alpha": cgo}, "alpha", false},
		{"none", map[string]native.Library{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withEngines(t, tt.engines)
			_, name, err := Default()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Default() error = %v, wantErr %v", err, tt.wantErr)
			}
			if name != tt.wantName {
				t.Errorf("Default() name = %q, want %q", name, tt.wantName)
			}
		})
	}
}

func TestNames_Sorted(t *testing.T) {
	withEngines(t, map[string]native.Library{})
	Register("b", nativetest.NewLibrary())
	Register("a", nativetest.NewLibrary())

	if got := Names(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v, want [a b]", got)
	}
}
