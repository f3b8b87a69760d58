package diag

import (
	"fmt"
	"strings"

	"github.com/alichraghi/shady/internal/module"
)

// FormatDanglingName renders a *module.ErrDanglingName as a
// user-facing diagnostic line, e.g.:
//
//	no declaration named "computeMain" (did you mean "computeMian", "computeMan", "compute_main"?)
func FormatDanglingName(e *module.ErrDanglingName) string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no declaration named %q", e.Name)
	}
	quoted := make([]string, len(e.Suggestions))
	for i, s := range e.Suggestions {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("no declaration named %q (did you mean %s?)", e.Name, strings.Join(quoted, ", "))
}
