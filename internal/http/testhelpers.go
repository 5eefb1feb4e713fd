package httpx

import (
	"os"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/revobooking/revo-ui/internal/http/uiutil"
)

// RequireTemplateRenderer parses the on-disk templates with an Indonesian
// formatter in WIB. The test is skipped when the templates are missing.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Formatter:  uiutil.NewFormatter(time.FixedZone("WIB", 7*60*60), language.Indonesian),
	})
	if err != nil {
		t.Skipf("templates not available: %v", err)
		return nil
	}
	return tr
}

// ContainsAll reports whether every fragment appears in the rendered page.
func ContainsAll(page string, fragments []string) bool {
	return len(missingFragments(page, fragments)) == 0
}

func missingFragments(page string, fragments []string) []string {
	var missing []string
	for _, f := range fragments {
		if !strings.Contains(page, f) {
			missing = append(missing, f)
		}
	}
	return missing
}
