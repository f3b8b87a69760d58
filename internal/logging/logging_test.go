package logging_test

import (
	"testing"

	"github.com/alichraghi/shady/internal/logging"
)

func TestLevelStringNames(t *testing.T) {
	cases := map[logging.Level]string{
		logging.Error:   "error",
		logging.Warn:    "warn",
		logging.Info:    "info",
		logging.Debug:   "debug",
		logging.DebugV:  "debugv",
		logging.DebugVV: "debugvv",
	}
	for lvl, want := range cases {
		if got := lvl.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", lvl, got, want)
		}
	}
}

func TestShouldLogDeclHonorsSkipFilters(t *testing.T) {
	l := logging.New()

	if !l.ShouldLogDecl(true, false) {
		t.Errorf("with no filters set, a generated decl should still log")
	}

	l.SetSkipFilters(true, false)
	if l.ShouldLogDecl(true, false) {
		t.Errorf("SetSkipFilters(true, false) should suppress generated decls")
	}
	if !l.ShouldLogDecl(false, true) {
		t.Errorf("skip_generated must not suppress a builtin-only decl")
	}

	l.SetSkipFilters(false, true)
	if l.ShouldLogDecl(false, true) {
		t.Errorf("SetSkipFilters(false, true) should suppress builtin decls")
	}
	if !l.ShouldLogDecl(true, false) {
		t.Errorf("skip_builtin must not suppress a generated-only decl")
	}
}
