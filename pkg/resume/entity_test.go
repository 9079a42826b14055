package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveDescription(t *testing.T) {
	cases := []struct {
		name     string
		d        ExperienceDetail
		original string
		want     string
	}{
		{"ai selected", ExperienceDetail{UseAIVersion: true, AIRewrittenDescription: "ai", OverriddenDescription: "ov"}, "orig", "ai"},
		{"ai selected but empty falls to override", ExperienceDetail{UseAIVersion: true, OverriddenDescription: "ov"}, "orig", "ov"},
		{"ai selected but empty falls to original", ExperienceDetail{UseAIVersion: true}, "orig", "orig"},
		{"ai not selected", ExperienceDetail{AIRewrittenDescription: "ai"}, "orig", "orig"},
		{"override", ExperienceDetail{OverriddenDescription: "ov"}, "orig", "ov"},
		{"whitespace override still wins", ExperienceDetail{OverriddenDescription: " "}, "orig", " "},
		{"nothing", ExperienceDetail{}, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EffectiveDescription(tc.d, tc.original))
		})
	}
}

func TestMergeExperienceSet(t *testing.T) {
	existing := []ExperienceDetail{
		{ResumeID: 1, ExperienceID: 5, OverriddenDescription: "ov5", DisplayOrder: 0},
		{ResumeID: 1, ExperienceID: 2, AIRewrittenDescription: "ai2", UseAIVersion: true, DisplayOrder: 1},
		{ResumeID: 1, ExperienceID: 9, OverriddenDescription: "gone", DisplayOrder: 2},
	}

	got := MergeExperienceSet(1, existing, []int64{2, 11, 5})
	assert.Equal(t, []ExperienceDetail{
		{ResumeID: 1, ExperienceID: 2, AIRewrittenDescription: "ai2", UseAIVersion: true, DisplayOrder: 0},
		{ResumeID: 1, ExperienceID: 11, DisplayOrder: 1},
		{ResumeID: 1, ExperienceID: 5, OverriddenDescription: "ov5", DisplayOrder: 2},
	}, got)

	assert.Empty(t, MergeExperienceSet(1, existing, nil))
	assert.Equal(t, []ExperienceDetail{{ResumeID: 1, ExperienceID: 9, DisplayOrder: 0}},
		MergeExperienceSet(1, nil, []int64{9}))
}
