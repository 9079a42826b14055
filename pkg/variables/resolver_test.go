package variables

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/docmaker/pkg/apperrors"
	"github.com/artem13815/docmaker/pkg/client"
	"github.com/artem13815/docmaker/pkg/experience"
	"github.com/artem13815/docmaker/pkg/media"
	"github.com/artem13815/docmaker/pkg/profile"
	"github.com/artem13815/docmaker/pkg/proposal"
)

type stubClients map[int64]client.Client

func (s stubClients) Get(_ context.Context, id int64) (client.Client, error) {
	c, ok := s[id]
	if !ok {
		return client.Client{}, apperrors.NotFound("client", id)
	}
	return c, nil
}

var fixedNow = time.Date(2025, time.March, 4, 9, 15, 0, 0, time.UTC)

func newTestResolver() *Resolver {
	clients := stubClients{
		7: {ID: 7, ClientName: "Acme", Website: "acme.test", MainEmail: "info@acme.test", MainContactName: "Jane Roe"},
	}
	return NewResolver(clients, media.NewURLBuilder("https://cdn.test/"), WithClock(func() time.Time { return fixedNow }))
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestResolveEmptyInput(t *testing.T) {
	vars := newTestResolver().Resolve(context.Background(), Input{})

	assert.Nil(t, vars["profile"])
	assert.Nil(t, vars["proposal"])
	assert.Empty(t, vars["experiences"])
	assert.Equal(t, "March 04, 2025", vars["current_date"])
	assert.Equal(t, 2025, vars["current_year"])

	res := vars["resume"].(map[string]any)
	assert.Nil(t, res["id"])
	assert.Equal(t, "March 04, 2025", res["generation_date"])
	assert.Equal(t, "2025-03-04T09:15:00Z", res["generation_timestamp"])
}

func TestResolveExperienceComputedFields(t *testing.T) {
	value := 250000.0
	exps := []experience.Experience{
		{
			ID: 1, ProjectName: "Harbor", ProjectDescription: "Dredging", ClientID: 7,
			ProjectValue: &value, DateStarted: date(2021, time.March, 1), DateCompleted: date(2022, time.January, 31),
			Tags: " marine, ,ports ,",
		},
		{ID: 2, ProjectName: "Depot", ClientID: 99, DateStarted: date(2025, time.March, 2)},
		{ID: 3, ProjectName: "Undated"},
	}
	vars := newTestResolver().Resolve(context.Background(), Input{Experiences: exps})
	list := vars["experiences"].([]any)
	require.Len(t, list, 3)

	first := list[0].(map[string]any)
	assert.Equal(t, "Dredging", first["project_description"])
	assert.Equal(t, "March 2021", first["date_started_formatted"])
	assert.Equal(t, "January 2022", first["date_completed_formatted"])
	assert.Equal(t, "March 2021 - January 2022", first["date_range"])
	assert.Equal(t, 10, first["duration_months"])
	assert.Equal(t, []string{"marine", "ports"}, first["tags"])
	assert.Equal(t, " marine, ,ports ,", first["tags_string"])
	assert.Equal(t, true, first["has_client"])
	assert.Equal(t, "Acme", first["client_name"])
	assert.Equal(t, true, first["has_value"])
	assert.Equal(t, false, first["is_current"])
	cl := first["client"].(map[string]any)
	assert.Equal(t, "Jane Roe", cl["main_contact"])
	assert.Equal(t, "info@acme.test", cl["main_email"])

	second := list[1].(map[string]any)
	assert.Equal(t, "Present", second["date_completed_formatted"])
	assert.Equal(t, "March 2025 - Present", second["date_range"])
	assert.Equal(t, 1, second["duration_months"])
	assert.Equal(t, true, second["is_current"])
	assert.Equal(t, false, second["has_client"], "unknown client degrades to absent")
	assert.Nil(t, second["client"])
	assert.Nil(t, second["client_name"])

	third := list[2].(map[string]any)
	assert.Nil(t, third["date_range"])
	assert.Nil(t, third["duration_months"])
	assert.Nil(t, third["date_started_formatted"])
	assert.Equal(t, false, third["has_dates"])
	assert.Equal(t, false, third["has_value"])
	assert.Equal(t, []string{}, third["tags"])
}

func TestResolveProfile(t *testing.T) {
	img := int64(42)
	years := 5
	p := &profile.Profile{
		ID: 3, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", MainImageID: &img,
		Skills: []profile.Skill{
			{Name: "Go", Category: "Languages", Years: &years},
			{Name: "Estimating"},
			{Name: "SQL", Category: "Languages"},
		},
	}
	vars := newTestResolver().Resolve(context.Background(), Input{Profile: p})
	pm := vars["profile"].(map[string]any)

	assert.Equal(t, "Ada Lovelace", pm["display_name"])
	assert.Equal(t, true, pm["has_contact_info"])
	assert.Equal(t, "https://cdn.test/api/media/42/raw", pm["main_image_url"])
	assert.Equal(t, 3, pm["skill_count"])
	assert.Equal(t, 0, pm["certification_count"])
	assert.Equal(t, 0, pm["education_count"])
	assert.Empty(t, pm["certifications"])

	groups := pm["skill_groups"].([]any)
	require.Len(t, groups, 2)
	assert.Equal(t, "Languages", groups[0].(map[string]any)["category"])
	assert.Len(t, groups[0].(map[string]any)["skills"], 2)
	assert.Equal(t, "Other", groups[1].(map[string]any)["category"])

	byCat := pm["skills_by_category"].(map[string]any)
	assert.Contains(t, byCat, "Languages")
	assert.Contains(t, byCat, "Other")
	assert.Equal(t, 5, byCat["Languages"].([]any)[0].(map[string]any)["years"])
}

func TestResolveProposal(t *testing.T) {
	clientID := int64(7)
	vars := newTestResolver().Resolve(context.Background(), Input{
		Proposal: &proposal.Proposal{ID: 12, Name: "Bridge Retrofit", ClientID: &clientID, Status: "draft"},
	})
	pm := vars["proposal"].(map[string]any)
	assert.Equal(t, "Bridge Retrofit", pm["name"])
	assert.Equal(t, true, pm["has_client"])
	assert.Equal(t, false, pm["has_context"])
	assert.Equal(t, "Acme", pm["client_name"])
	assert.Equal(t, "Jane Roe", pm["client"].(map[string]any)["main_contact"])
}

func TestResolveOverridesDeepMerge(t *testing.T) {
	id := int64(5)
	vars := newTestResolver().Resolve(context.Background(), Input{
		ResumeID:    &id,
		ResumeAlias: "Bridge bid",
		Overrides: map[string]any{
			"resume":  map[string]any{"alias": "Custom"},
			"company": "Contoso",
		},
	})
	res := vars["resume"].(map[string]any)
	assert.Equal(t, "Custom", res["alias"])
	assert.Equal(t, int64(5), res["id"])
	assert.Equal(t, "March 04, 2025", res["generation_date"])
	assert.Equal(t, "Contoso", vars["company"])
}

func TestValidateOverrides(t *testing.T) {
	require.NoError(t, ValidateOverrides(nil))
	require.NoError(t, ValidateOverrides(map[string]any{
		"company": "Contoso",
		"resume":  map[string]any{"generation-date": "nested keys are not checked"},
	}))

	err := ValidateOverrides(map[string]any{"my-key": 1})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "my-key")

	assert.ErrorIs(t, ValidateOverrides(map[string]any{"": 1}), apperrors.ErrValidation)
	assert.ErrorIs(t, ValidateOverrides(map[string]any{"a b": 1}), apperrors.ErrValidation)
}

func TestDurationMonths(t *testing.T) {
	assert.Nil(t, DurationMonths(nil, date(2020, time.May, 1), fixedNow))
	assert.Equal(t, 1, *DurationMonths(date(2020, time.May, 1), date(2020, time.May, 30), fixedNow))
	assert.Equal(t, 24, *DurationMonths(date(2020, time.May, 1), date(2022, time.May, 1), fixedNow))
	assert.Equal(t, 12, *DurationMonths(date(2024, time.March, 20), nil, fixedNow))
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{}, SplitTags(""))
	assert.Equal(t, []string{"a", "b c"}, SplitTags("a, b c ,,"))
}
