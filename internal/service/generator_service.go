package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/dto"
	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/models"
	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/timetable"
	"github.com/Aplkalex/cuhk-scheduler-sub000/pkg/config"
	appErrors "github.com/Aplkalex/cuhk-scheduler-sub000/pkg/errors"
)

// GeneratorService validates generation requests, resolves catalog courses
// and runs the timetable engine, with an optional response cache in front.
type GeneratorService struct {
	catalog  CatalogReader
	cache    *CacheService
	metrics  *MetricsService
	validate *validator.Validate
	logger   *zap.Logger
	cfg      config.GeneratorConfig
}

// NewGeneratorService constructs a generator service.
func NewGeneratorService(catalog CatalogReader, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg config.GeneratorConfig) *GeneratorService {
	return &GeneratorService{
		catalog:  catalog,
		cache:    cache,
		metrics:  metrics,
		validate: validator.New(),
		logger:   logger,
		cfg:      cfg,
	}
}

// Generate produces ranked schedule candidates for the requested courses.
func (s *GeneratorService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation request")
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = s.cfg.DefaultMaxResults
	}
	if s.cfg.MaxResultsLimit > 0 && maxResults > s.cfg.MaxResultsLimit {
		maxResults = s.cfg.MaxResultsLimit
	}

	key := s.cacheKey(req, maxResults)
	var cached dto.GenerateScheduleResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		s.logger.Debug("generation served from cache", zap.String("key", key))
		return &cached, nil
	}

	resolved, missing := s.catalog.Resolve(req.Courses)

	response := &dto.GenerateScheduleResponse{
		RunID:      uuid.NewString(),
		Candidates: []dto.ScheduleCandidate{},
	}
	for _, code := range missing {
		response.Warnings = append(response.Warnings, dto.GenerationWarning{
			CourseCode: code,
			Reason:     "course not found in catalog",
		})
	}
	if len(resolved) == 0 {
		return response, nil
	}

	runCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := timetable.Generate(runCtx, resolved, timetable.Options{
		Preference:          timetable.Preference(req.Preference),
		MaxResults:          maxResults,
		ExcludeFullSections: req.ExcludeFullSections,
		OverGenerateFactor:  s.cfg.OverGenerateFactor,
		Logger:              s.logger,
	})
	duration := time.Since(start)

	outcome := "ok"
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			// The deadline bounds the search, it does not fail the request.
			// Whatever was found in time is ranked and returned.
			outcome = "timeout"
			response.Warnings = append(response.Warnings, dto.GenerationWarning{
				Reason: "generation timed out; the candidate list may be incomplete",
			})
		} else {
			s.metrics.ObserveGeneration("cancelled", 0, duration)
			return nil, appErrors.Wrap(err, appErrors.ErrTimeout.Code, appErrors.ErrTimeout.Status, "generation aborted")
		}
	}

	for _, warning := range result.Warnings {
		response.Warnings = append(response.Warnings, dto.GenerationWarning{
			CourseCode: warning.CourseCode,
			SectionID:  warning.SectionID,
			Reason:     warning.Reason,
		})
	}
	for _, candidate := range result.Candidates {
		response.Candidates = append(response.Candidates, toCandidateDTO(candidate))
	}

	s.metrics.ObserveGeneration(outcome, len(response.Candidates), duration)
	s.logger.Info("generation run finished",
		zap.String("run_id", response.RunID),
		zap.Strings("courses", req.Courses),
		zap.String("preference", req.Preference),
		zap.Int("candidates", len(response.Candidates)),
		zap.Int("warnings", len(response.Warnings)),
		zap.Duration("duration", duration),
		zap.String("outcome", outcome),
	)

	// Timed-out runs are not cached: a retry may have time to do better.
	if outcome == "ok" {
		_ = s.cache.Set(ctx, key, response, s.cfg.CacheTTL)
	}

	return response, nil
}

// Preferences lists the selectable ranking preferences.
func (s *GeneratorService) Preferences() []string {
	prefs := timetable.Preferences()
	names := make([]string, 0, len(prefs))
	for _, pref := range prefs {
		names = append(names, string(pref))
	}
	return names
}

// cacheKey derives a stable key from everything that shapes the response.
// Course order matters: it drives the display palette.
func (s *GeneratorService) cacheKey(req dto.GenerateScheduleRequest, maxResults int) string {
	payload := fmt.Sprintf("%s|%s|%d|%t",
		strings.Join(req.Courses, ","), req.Preference, maxResults, req.ExcludeFullSections)
	sum := sha256.Sum256([]byte(payload))
	return "schedules:generate:" + hex.EncodeToString(sum[:])
}

func toCandidateDTO(candidate *timetable.Candidate) dto.ScheduleCandidate {
	entries := make([]dto.ScheduleEntry, 0, len(candidate.Sections))
	for _, selected := range candidate.Sections {
		slots := make([]dto.TimeSlotView, 0, len(selected.Section.Slots))
		for _, slot := range selected.Section.Slots {
			slots = append(slots, dto.TimeSlotView{
				Day:   slot.Day.String(),
				Start: timetable.FormatClock(slot.Start),
				End:   timetable.FormatClock(slot.End),
				Room:  slot.Room,
			})
		}
		entries = append(entries, dto.ScheduleEntry{
			CourseCode:     selected.Course.Code,
			CourseName:     selected.Course.Name,
			SectionID:      selected.Section.ID,
			Kind:           string(selected.Section.Kind),
			ParentLecture:  selected.Section.ParentLecture,
			Slots:          slots,
			Color:          selected.Color,
			SeatsRemaining: selected.Section.SeatsRemaining(),
		})
	}

	m := candidate.Metrics
	return dto.ScheduleCandidate{
		Sections: entries,
		Score:    candidate.Score,
		Metadata: dto.CandidateMetadata{
			TotalGapMinutes:  m.TotalGapMinutes,
			GapCount:         m.GapCount,
			MaxGapMinutes:    m.MaxGapMinutes,
			TotalSpanMinutes: m.TotalSpanMinutes,
			DaysUsed:         m.DaysUsed,
			FreeDays:         m.FreeDays,
			AvgStartMinutes:  m.AvgStartMinutes,
			AvgEndMinutes:    m.AvgEndMinutes,
			EarliestStart:    m.EarliestStart,
			LatestEnd:        m.LatestEnd,
			StartVariance:    m.StartVariance,
			LongBreakCount:   m.LongBreakCount,
			LongBreakMinutes: m.LongBreakMinutes,
			SeatScore:        candidate.SeatScore,
			PreferenceScore:  candidate.PreferenceScore,
		},
	}
}
