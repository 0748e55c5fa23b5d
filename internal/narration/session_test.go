package narration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/narrator/internal/catalog"
)

var (
	visitorTemplate = catalog.Template{
		ID:          "visitor",
		Category:    "Visitors Visa",
		Description: "Services for <Applicant name> in <country>. " + Disclaimer,
	}
	travelTemplate = catalog.Template{
		ID:          "travel",
		Category:    "Additional Narrations",
		Description: "Travel pack for <Applicant name>.",
	}
)

func TestSession_NoTemplate(t *testing.T) {
	s := NewSession()

	_, err := s.Preview()
	assert.ErrorIs(t, err, ErrNoTemplate)
	assert.ErrorIs(t, s.Set("<x>", "y"), ErrNoTemplate)
	assert.False(t, s.CanRefine())

	_, err = s.Refine(context.Background(), func(context.Context, string, string, string) (string, error) {
		t.Fatal("refine func must not be called without a template")
		return "", nil
	})
	assert.ErrorIs(t, err, ErrNoTemplate)
}

func TestSession_SelectResetsPlaceholders(t *testing.T) {
	s := NewSession()
	s.Select(visitorTemplate)

	assert.Equal(t, []string{"<Applicant name>", "<country>"}, s.Placeholders())
	assert.Equal(t, map[string]string{"<Applicant name>": "", "<country>": ""}, s.Values())

	require.NoError(t, s.Set("<Applicant name>", "Jane Doe"))
	require.NoError(t, s.Set("<country>", "Kenya"))

	s.Select(travelTemplate)
	assert.Equal(t, map[string]string{"<Applicant name>": "Jane Doe"}, s.Values())

	preview, err := s.Preview()
	require.NoError(t, err)
	assert.Equal(t, "Travel pack for Jane Doe.", preview)

	s.Select(visitorTemplate)
	assert.Equal(t, "", s.Values()["<country>"])
}

func TestSession_SetUnknownPlaceholder(t *testing.T) {
	s := NewSession()
	s.Select(travelTemplate)
	assert.ErrorIs(t, s.Set("<country>", "Kenya"), ErrUnknownPlaceholder)
}

func TestSession_PreviewAppliesAdjustments(t *testing.T) {
	s := NewSession()
	s.Select(travelTemplate)
	s.SetAdjustments(Adjustments{Urgent: true, UrgencyFee: "R500"})

	preview, err := s.Preview()
	require.NoError(t, err)
	assert.Equal(t, "Travel pack for <Applicant name>. Note: An urgency fee of R500 has been applied for this application.", preview)
	assert.True(t, s.Adjustments().Urgent)
}

func TestSession_Refine(t *testing.T) {
	s := NewSession()
	s.Select(visitorTemplate)
	require.NoError(t, s.Set("<Applicant name>", "Jane"))
	s.SetNotes("3 hours with HR")
	assert.True(t, s.CanRefine())

	var gotID, gotText, gotNotes string
	refined, err := s.Refine(context.Background(), func(_ context.Context, id, text, notes string) (string, error) {
		gotID, gotText, gotNotes = id, text, notes
		return "Refined. " + Disclaimer, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Refined. "+Disclaimer, refined)
	assert.Equal(t, "visitor", gotID)
	assert.Equal(t, "Services for Jane in <country>. "+Disclaimer, gotText)
	assert.Equal(t, "3 hours with HR", gotNotes)

	text, err := s.Text()
	require.NoError(t, err)
	assert.Equal(t, refined, text)

	// Notes edits do not change the composed text, so the refinement stands.
	s.SetNotes("other notes")
	text, err = s.Text()
	require.NoError(t, err)
	assert.Equal(t, refined, text)

	// Editing an input recomposes and drops the stale refinement.
	require.NoError(t, s.Set("<country>", "Kenya"))
	text, err = s.Text()
	require.NoError(t, err)
	assert.Equal(t, "Services for Jane in Kenya. "+Disclaimer, text)
}

func TestSession_RefineRejected(t *testing.T) {
	s := NewSession()
	s.Select(travelTemplate)

	rejected := errors.New("notes required")
	_, err := s.Refine(context.Background(), func(context.Context, string, string, string) (string, error) {
		return "", rejected
	})
	assert.ErrorIs(t, err, rejected)
	assert.False(t, s.Refining())

	text, err := s.Text()
	require.NoError(t, err)
	assert.Equal(t, "Travel pack for <Applicant name>.", text)
}

func TestSession_OneRefinementInFlight(t *testing.T) {
	s := NewSession()
	s.Select(travelTemplate)
	s.SetNotes("notes")

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		_, err := s.Refine(context.Background(), func(context.Context, string, string, string) (string, error) {
			close(started)
			<-release
			return "first", nil
		})
		done <- err
	}()

	<-started
	assert.True(t, s.Refining())
	assert.False(t, s.CanRefine())

	_, err := s.Refine(context.Background(), func(context.Context, string, string, string) (string, error) {
		t.Fatal("second refinement must not run")
		return "", nil
	})
	assert.ErrorIs(t, err, ErrRefinementInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, s.Refining())

	text, err := s.Text()
	require.NoError(t, err)
	assert.Equal(t, "first", text)
}
