package refine

import (
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/narrator/internal/catalog"
	"github.com/MikeSquared-Agency/narrator/internal/narration"
)

func travelTemplate() catalog.Template {
	return catalog.Template{ID: "travel-pack", Description: "Travel pack for <Applicant name>."}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("NARRATION TEXT", "NOTES TEXT")

	orig := strings.Index(p, "ORIGINAL TEMPLATE:\nNARRATION TEXT")
	details := strings.Index(p, "ADDITIONAL DETAILS TO INTEGRATE:\nNOTES TEXT")
	rules := strings.Index(p, "RULES:")
	if orig < 0 || details < 0 || rules < 0 {
		t.Fatalf("prompt missing a section:\n%s", p)
	}
	if !(orig < details && details < rules) {
		t.Errorf("sections out of order: original=%d details=%d rules=%d", orig, details, rules)
	}
	if !strings.Contains(p, narration.Disclaimer) {
		t.Error("prompt must quote the disclaimer verbatim")
	}
	if !strings.Contains(p, "one coherent paragraph") {
		t.Error("prompt must ask for one coherent paragraph")
	}
}
