package resume

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/artem13815/docmaker/pkg/apperrors"
	"github.com/artem13815/docmaker/pkg/proposal"
	"github.com/artem13815/docmaker/pkg/rewrite"
)

const aiRemediation = "Set OPENROUTER_API_KEY (or OPENAI_API_KEY) and restart the server."

type RewriteOptions struct {
	// Source replaces the experience description as the text to rewrite.
	Source string
	// Instruction is an extra user instruction appended to the prompt.
	Instruction string
	Model       string
	// RequireInstruction rejects an empty Instruction.
	RequireInstruction bool
}

// RewriteOutcome reports one rewrite. Saved is false when the model call
// failed; stored state is then unchanged and Result echoes the original text.
type RewriteOutcome struct {
	ExperienceID       int64          `json:"experience_id"`
	Saved              bool           `json:"saved"`
	UseAIVersion       bool           `json:"use_ai_version"`
	CurrentDescription string         `json:"current_description"`
	Result             rewrite.Result `json:"result"`
}

type BulkItem struct {
	ExperienceID           int64  `json:"experience_id"`
	ProjectName            string `json:"project_name"`
	AIRewrittenDescription string `json:"ai_rewritten_description"`
}

type BulkFailure struct {
	ExperienceID int64  `json:"experience_id"`
	Error        string `json:"error"`
}

type BulkOutcome struct {
	Updated []BulkItem    `json:"updated_experiences"`
	Failed  []BulkFailure `json:"failed_experiences"`
	Skipped []int64       `json:"skipped_experiences"`
}

func (s *service) Rewrite(ctx context.Context, id, experienceID int64, opts RewriteOptions) (RewriteOutcome, error) {
	opts.Instruction = strings.TrimSpace(opts.Instruction)
	if opts.RequireInstruction && opts.Instruction == "" {
		return RewriteOutcome{}, apperrors.Validation("custom prompt is required")
	}
	r, err := s.Resumes.Get(ctx, id)
	if err != nil {
		return RewriteOutcome{}, err
	}
	d, err := s.detail(ctx, id, experienceID)
	if err != nil {
		return RewriteOutcome{}, err
	}
	p, err := s.alignment(ctx, r)
	if err != nil {
		return RewriteOutcome{}, err
	}
	if !s.Rewriter.Configured() {
		return RewriteOutcome{}, apperrors.Unavailable("ai rewrite", aiRemediation, nil)
	}
	exps, err := s.experiences(ctx, []ExperienceDetail{d})
	if err != nil {
		return RewriteOutcome{}, err
	}
	e := exps[experienceID]

	source := opts.Source
	if strings.TrimSpace(source) == "" {
		source = e.ProjectDescription
	}
	res := s.Rewriter.Rewrite(ctx, rewrite.Request{
		Original:    source,
		Context:     p.AlignmentContext(),
		Instruction: opts.Instruction,
		Model:       opts.Model,
	})
	out := RewriteOutcome{ExperienceID: experienceID, Result: res}
	if res.Success {
		d.AIRewrittenDescription = res.Content
		if err := s.Resumes.UpdateDetail(ctx, d); err != nil {
			return RewriteOutcome{}, err
		}
		out.Saved = true
	} else {
		s.log.Warn("experience rewrite not saved",
			zap.Int64("resume_id", id),
			zap.Int64("experience_id", experienceID),
			zap.String("reason", res.Error),
		)
	}
	out.UseAIVersion = d.UseAIVersion
	out.CurrentDescription = EffectiveDescription(d, e.ProjectDescription)
	return out, nil
}

// BulkRewrite rewrites every experience of the resume that has a description.
// Each success is stored on its own; failures are collected, not fatal.
func (s *service) BulkRewrite(ctx context.Context, id int64) (BulkOutcome, error) {
	r, details, err := s.load(ctx, id)
	if err != nil {
		return BulkOutcome{}, err
	}
	p, err := s.alignment(ctx, r)
	if err != nil {
		return BulkOutcome{}, err
	}
	if !s.Rewriter.Configured() {
		return BulkOutcome{}, apperrors.Unavailable("ai rewrite", aiRemediation, nil)
	}
	exps, err := s.experiences(ctx, details)
	if err != nil {
		return BulkOutcome{}, err
	}

	out := BulkOutcome{Updated: []BulkItem{}, Failed: []BulkFailure{}, Skipped: []int64{}}
	for _, d := range details {
		e := exps[d.ExperienceID]
		if strings.TrimSpace(e.ProjectDescription) == "" {
			out.Skipped = append(out.Skipped, d.ExperienceID)
			continue
		}
		res := s.Rewriter.Rewrite(ctx, rewrite.Request{Original: e.ProjectDescription, Context: p.AlignmentContext()})
		if !res.Success {
			out.Failed = append(out.Failed, BulkFailure{ExperienceID: d.ExperienceID, Error: res.Error})
			continue
		}
		d.AIRewrittenDescription = res.Content
		if err := s.Resumes.UpdateDetail(ctx, d); err != nil {
			return out, err
		}
		out.Updated = append(out.Updated, BulkItem{
			ExperienceID:           d.ExperienceID,
			ProjectName:            e.ProjectName,
			AIRewrittenDescription: res.Content,
		})
	}
	s.log.Info("bulk rewrite finished",
		zap.Int64("resume_id", id),
		zap.Int("updated", len(out.Updated)),
		zap.Int("failed", len(out.Failed)),
	)
	return out, nil
}

func (s *service) alignment(ctx context.Context, r Resume) (proposal.Proposal, error) {
	if r.ProposalID == nil {
		return proposal.Proposal{}, apperrors.Validation("resume %d has no associated proposal", r.ID)
	}
	return s.Proposals.Get(ctx, *r.ProposalID)
}
