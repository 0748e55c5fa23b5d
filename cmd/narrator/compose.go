package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/narrator/internal/form"
	"github.com/MikeSquared-Agency/narrator/internal/narration"
)

var composeFlags struct {
	template         string
	set              []string
	urgent           bool
	urgencyFee       string
	timeSpent        bool
	timeSpentDetails string
	notes            string
	copy             bool
	nonInteractive   bool
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Build a narration interactively or from flags",
	Long: `Build a narration.

Without --non-interactive a terminal form asks for the template, its
placeholders, the adjustments and optional refinement notes.

With --non-interactive everything comes from flags:

  narrator compose --non-interactive --template critical-skills-embassy \
    --set "Applicant name=Jane Doe" --set "<country>=Kenya" \
    --urgent --urgency-fee R2,500 --notes "3 hours with HR"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		gw, closeGateway, err := newGateway(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeGateway()

		session := narration.NewSession()
		out := cmd.OutOrStdout()

		if !composeFlags.nonInteractive {
			f := form.New(form.NewSurveyDriver(out), cat, gw.Func(), form.SystemClipboard, slog.Default())
			_, err := f.Run(ctx, session)
			return err
		}

		if composeFlags.template == "" {
			return fmt.Errorf("--template is required with --non-interactive")
		}
		tpl, err := cat.Get(composeFlags.template)
		if err != nil {
			return err
		}
		session.Select(tpl)

		values, err := parseAssignments(composeFlags.set)
		if err != nil {
			return err
		}
		for tok, v := range values {
			if err := session.Set(tok, v); err != nil {
				return err
			}
		}
		session.SetAdjustments(narration.Adjustments{
			Urgent:           composeFlags.urgent,
			UrgencyFee:       composeFlags.urgencyFee,
			IncludeTimeSpent: composeFlags.timeSpent,
			TimeSpentDetails: composeFlags.timeSpentDetails,
		})

		if cmd.Flags().Changed("notes") {
			session.SetNotes(composeFlags.notes)
			if _, err := session.Refine(ctx, gw.Func()); err != nil {
				return err
			}
		}

		text, err := session.Text()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)

		if composeFlags.copy {
			if err := form.SystemClipboard(text); err != nil {
				fmt.Fprintln(os.Stderr, "could not copy to clipboard:", err)
			}
		}
		return nil
	},
}

func init() {
	f := composeCmd.Flags()
	f.StringVar(&composeFlags.template, "template", "", "template id")
	f.StringArrayVar(&composeFlags.set, "set", nil, `placeholder value as "<token>=value" or "token=value" (repeatable)`)
	f.BoolVar(&composeFlags.urgent, "urgent", false, "append the urgency fee sentence")
	f.StringVar(&composeFlags.urgencyFee, "urgency-fee", "", "urgency fee amount, e.g. R2,500")
	f.BoolVar(&composeFlags.timeSpent, "time-spent", false, "append the time-spent sentence")
	f.StringVar(&composeFlags.timeSpentDetails, "time-spent-details", "", "time spent since last invoice")
	f.StringVar(&composeFlags.notes, "notes", "", "notes to blend in with the text-generation service")
	f.BoolVar(&composeFlags.copy, "copy", false, "copy the final text to the clipboard")
	f.BoolVar(&composeFlags.nonInteractive, "non-interactive", false, "take all input from flags")
}

// parseAssignments turns "token=value" flags into placeholder values. Tokens
// given without angle brackets are wrapped in them.
func parseAssignments(assignments []string) (map[string]string, error) {
	values := make(map[string]string, len(assignments))
	for _, a := range assignments {
		tok, v, ok := strings.Cut(a, "=")
		tok = strings.TrimSpace(tok)
		if !ok || tok == "" {
			return nil, fmt.Errorf("invalid --set %q, want token=value", a)
		}
		if !strings.HasPrefix(tok, "<") || !strings.HasSuffix(tok, ">") {
			tok = "<" + tok + ">"
		}
		values[tok] = v
	}
	return values, nil
}
