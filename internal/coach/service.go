package coach

import (
	"context"
	"strings"

	"resumelens/internal/ats"
	"resumelens/internal/errors"
	"resumelens/internal/strength"
	"resumelens/internal/types"
)

// Service exposes the analysis operations behind a single entry point.
// All operations are pure text transformations; the context is honored
// for cancellation between pipeline stages.
type Service struct {
	logger *errors.Logger
}

// NewService creates a new analysis service
func NewService(logger *errors.Logger) *Service {
	return &Service{logger: logger}
}

// MatchResume extracts keywords from a job description and a resume, then
// scores how well the resume covers the posting.
func (s *Service) MatchResume(ctx context.Context, input types.MatchResumeInput) (types.MatchResumeOutput, error) {
	var output types.MatchResumeOutput

	if strings.TrimSpace(input.JobDescription) == "" {
		return output, errors.NewValidationError(errors.ErrCodeEmptyInput,
			"job description is required", nil)
	}

	resumeText := input.ResumeText
	if input.Resume != nil {
		resumeText = ats.ExtractResumeText(*input.Resume)
	}
	if strings.TrimSpace(resumeText) == "" {
		return output, errors.NewValidationError(errors.ErrCodeEmptyInput,
			"resume text or a structured resume is required", nil)
	}

	jobKeywords := ats.ExtractKeywords(input.JobDescription)

	if err := ctx.Err(); err != nil {
		return output, errors.NewAnalysisError(errors.ErrCodeAnalysisFailed,
			"match cancelled", err)
	}

	resumeKeywords := ats.ExtractKeywords(resumeText)
	result := ats.CalculateScore(jobKeywords, resumeKeywords)

	if s.logger != nil {
		s.logger.Debug("Resume matched against job description",
			"score", result.Score,
			"job_technical", len(jobKeywords.Technical),
			"resume_technical", len(resumeKeywords.Technical),
			"suggestions", len(result.Suggestions))
	}

	return types.MatchResumeOutput{
		Score:          result.Score,
		Label:          ats.ScoreLabel(result.Score),
		Color:          ats.ScoreColor(result.Score),
		Matched:        result.Matched,
		Missing:        result.Missing,
		Suggestions:    result.Suggestions,
		JobKeywords:    jobKeywords,
		ResumeKeywords: resumeKeywords,
	}, nil
}

// AnalyzeBullet rates a single bullet point and reports weak phrasing.
func (s *Service) AnalyzeBullet(ctx context.Context, input types.AnalyzeBulletInput) (types.AnalyzeBulletOutput, error) {
	var output types.AnalyzeBulletOutput

	if err := ctx.Err(); err != nil {
		return output, errors.NewAnalysisError(errors.ErrCodeAnalysisFailed,
			"analysis cancelled", err)
	}

	analysis := strength.SuggestImprovements(input.Text)

	if s.logger != nil {
		s.logger.Debug("Bullet point analyzed",
			"score", analysis.Score,
			"can_strengthen", analysis.CanStrengthen)
	}

	return types.AnalyzeBulletOutput{
		Score:         analysis.Score,
		Label:         analysis.Label,
		Pattern:       analysis.Pattern,
		Suggestions:   analysis.Suggestions,
		CanStrengthen: analysis.CanStrengthen,
	}, nil
}

// BuildStatement renders a strengthened statement from a pattern template
// and user-supplied field values.
func (s *Service) BuildStatement(ctx context.Context, input types.BuildStatementInput) (types.BuildStatementOutput, error) {
	var output types.BuildStatementOutput

	if err := ctx.Err(); err != nil {
		return output, errors.NewAnalysisError(errors.ErrCodeAnalysisFailed,
			"statement build cancelled", err)
	}

	pattern := strength.PatternByID(input.PatternID)
	if pattern == nil {
		return output, errors.NewValidationError(errors.ErrCodeUnknownPattern,
			"unknown pattern: "+input.PatternID, nil).
			WithContext("pattern_id", input.PatternID)
	}

	statement := strength.BuildStatement(pattern, input.Values)

	return types.BuildStatementOutput{
		PatternID: pattern.ID,
		Statement: statement,
		Complete:  !strings.Contains(statement, "["),
	}, nil
}

// ListPatterns returns the weak-pattern library in priority order.
func (s *Service) ListPatterns() types.ListPatternsOutput {
	patterns := make([]types.PatternSummary, 0, len(strength.WeakPatterns))
	for _, pattern := range strength.WeakPatterns {
		patterns = append(patterns, types.PatternSummary{
			ID:       pattern.ID,
			Name:     pattern.Name,
			Template: pattern.Template,
			Examples: pattern.Examples,
		})
	}
	return types.ListPatternsOutput{Patterns: patterns}
}
