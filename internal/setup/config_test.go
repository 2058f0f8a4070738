package setup

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/parquery/releasery/internal/release"
)

func TestLoadEnvironmentSplitsRoots(t *testing.T) {
	t.Setenv("GOPATH", strings.Join([]string{"/home/u/go", "/opt/go"}, string(os.PathListSeparator)))

	environment, err := LoadEnvironment()
	if err != nil {
		t.Fatalf("loading environment failed: %v", err)
	}

	if len(environment.BuildRoots) != 2 {
		t.Fatalf("expected two roots, got %v", environment.BuildRoots)
	}
	if environment.PrimaryRoot() != "/home/u/go" {
		t.Fatalf("first root must be authoritative, got %q", environment.PrimaryRoot())
	}
}

func TestLoadEnvironmentFailsWhenUnset(t *testing.T) {
	for _, value := range []string{"", "   "} {
		t.Setenv("GOPATH", value)

		_, err := LoadEnvironment()
		if err == nil {
			t.Fatalf("GOPATH=%q should be rejected", value)
		}

		var confErr *release.ConfigurationError
		if !errors.As(err, &confErr) {
			t.Fatalf("expected a ConfigurationError, got %T: %v", err, err)
		}
		if confErr.Variable != "GOPATH" {
			t.Fatalf("error should name GOPATH, got %q", confErr.Variable)
		}
	}
}

func TestLoadEnvironmentDropsEmptyEntries(t *testing.T) {
	t.Setenv("GOPATH", string(os.PathListSeparator)+"/home/u/go"+string(os.PathListSeparator))

	environment, err := LoadEnvironment()
	if err != nil {
		t.Fatalf("loading environment failed: %v", err)
	}
	if len(environment.BuildRoots) != 1 || environment.PrimaryRoot() != "/home/u/go" {
		t.Fatalf("unexpected roots: %v", environment.BuildRoots)
	}
}
