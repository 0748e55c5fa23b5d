package refine

import (
	"fmt"

	"github.com/MikeSquared-Agency/narrator/internal/narration"
)

const refinementPrompt = `I am an immigration consultant.
Below is a standardized invoice narration.
I need to integrate some additional custom coordination details into this paragraph smoothly while maintaining the formal professional tone.

ORIGINAL TEMPLATE:
%s

ADDITIONAL DETAILS TO INTEGRATE:
%s

RULES:
1. Keep the professional tone.
2. Do NOT remove or modify the following exact sentence: "%s" It must appear exactly as is.
3. Ensure the result is one coherent paragraph.
4. Return ONLY the refined paragraph text.`

// BuildPrompt is the directive sent to the text-generation service.
func BuildPrompt(text, notes string) string {
	return fmt.Sprintf(refinementPrompt, text, notes, narration.Disclaimer)
}
