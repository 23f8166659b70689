package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/booknav/internal/content"
	berrors "git.home.luguber.info/inful/booknav/internal/errors"
	"git.home.luguber.info/inful/booknav/internal/logfields"
	"git.home.luguber.info/inful/booknav/internal/metrics"
	"git.home.luguber.info/inful/booknav/internal/nav"
	"git.home.luguber.info/inful/booknav/internal/observability"
	"git.home.luguber.info/inful/booknav/internal/site"
	"git.home.luguber.info/inful/booknav/internal/version"
)

// DefaultBuildService implements BuildService.
type DefaultBuildService struct {
	recorder metrics.Recorder
	now      func() time.Time
	newID    func() string
}

// NewBuildService creates a service with a no-op recorder.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

type navigationFile struct {
	Site     *site.Metadata `json:"site"`
	Sidebar  *nav.Tree      `json:"sidebar"`
	Warnings []nav.Warning  `json:"warnings,omitempty"`
}

type manifestPage struct {
	Target      string `json:"target"`
	URL         string `json:"url"`
	SourcePath  string `json:"sourcePath,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

type manifestFile struct {
	BuildID     string         `json:"buildId"`
	Version     string         `json:"version"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Title       string         `json:"title"`
	Pages       []manifestPage `json:"pages"`
	Orphans     []string       `json:"orphans,omitempty"`
	Warnings    int            `json:"warnings"`
}

// Run executes prepare, render and write. On any error nothing is written.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	start := s.now()
	result := &BuildResult{StartTime: start, BuildID: s.newID()}
	ctx = observability.WithBuildID(ctx, result.BuildID)

	fail := func(stage string, err error) (*BuildResult, error) {
		result.Status = BuildStatusFailed
		outcome := metrics.BuildOutcomeFailed
		stageResult := metrics.ResultFatal
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			result.Status = BuildStatusCancelled
			outcome = metrics.BuildOutcomeCanceled
			stageResult = metrics.ResultCanceled
			err = berrors.Wrap(err, berrors.CategoryRuntime, berrors.SeverityFatal, "build cancelled")
		}
		result.EndTime = s.now()
		result.Duration = result.EndTime.Sub(start)
		s.recorder.IncStageResult(stage, stageResult)
		s.recorder.IncBuildOutcome(outcome)
		s.recorder.ObserveBuildDuration(result.Duration)
		return result, err
	}

	if req.Config == nil {
		return fail("prepare", berrors.New(berrors.CategoryConfig, berrors.SeverityFatal, "config required"))
	}
	result.OutputPath = req.OutputDir
	if result.OutputPath == "" {
		result.OutputPath = req.Config.Output.Directory
	}

	// Stage 1: validate configuration into the site model
	stageStart := s.now()
	sctx := observability.WithStage(ctx, "prepare")
	model, err := Prepare(sctx, req.Config)
	if err != nil {
		if kind := ValidationKind(err); kind != "" {
			s.recorder.IncValidationFailure(kind)
		}
		return fail("prepare", err)
	}
	s.recorder.ObserveStageDuration("prepare", s.now().Sub(stageStart))
	s.recorder.IncStageResult("prepare", metrics.ResultSuccess)
	s.recorder.AddFlattenedGroups(len(model.Warnings))
	result.Warnings = model.Warnings
	result.Orphans = model.Orphans
	observability.InfoContext(sctx, "navigation built",
		logfields.Count(model.Tree.Len()), slog.Int("groups", len(model.Tree.Groups())))

	// Stage 2: one page model per sidebar link
	stageStart = s.now()
	sctx = observability.WithStage(ctx, "render")
	links := model.Tree.Links()
	pages := make([]PageModel, 0, len(links))
	for _, l := range links {
		if err := ctx.Err(); err != nil {
			return fail("render", err)
		}
		pm, err := model.Page(l.Target)
		if err != nil {
			return fail("render", err)
		}
		pages = append(pages, pm)
	}
	s.recorder.ObserveStageDuration("render", s.now().Sub(stageStart))
	s.recorder.IncStageResult("render", metrics.ResultSuccess)
	observability.DebugContext(sctx, "rendered page models", logfields.Count(len(pages)))
	result.Pages = len(pages)

	// Stage 3: stage and promote output
	if !req.Options.DryRun {
		stageStart = s.now()
		sctx = observability.WithStage(ctx, "write")
		if err := s.write(sctx, req, result, model, pages); err != nil {
			return fail("write", err)
		}
		s.recorder.ObserveStageDuration("write", s.now().Sub(stageStart))
		s.recorder.IncStageResult("write", metrics.ResultSuccess)
	}

	result.Status = BuildStatusSuccess
	outcome := metrics.BuildOutcomeSuccess
	if len(result.Warnings) > 0 || len(result.Orphans) > 0 {
		result.Status = BuildStatusWarning
		outcome = metrics.BuildOutcomeWarning
	}
	result.EndTime = s.now()
	result.Duration = result.EndTime.Sub(start)
	s.recorder.SetPages(result.Pages, len(result.Orphans))
	s.recorder.IncBuildOutcome(outcome)
	s.recorder.ObserveBuildDuration(result.Duration)
	observability.InfoContext(ctx, "build complete",
		slog.String("status", string(result.Status)),
		logfields.Count(result.Pages),
		logfields.DurationMS(float64(result.Duration.Microseconds())/1000))
	return result, nil
}

func (s *DefaultBuildService) write(ctx context.Context, req BuildRequest, result *BuildResult, model *Site, pages []PageModel) error {
	st := &stager{outputDir: result.OutputPath, pretty: req.Options.Pretty || req.Config.Output.Pretty}
	if err := st.begin(); err != nil {
		return berrors.OutputFailed("begin staging", err).WithContext("path", result.OutputPath)
	}
	defer st.abort()

	if err := st.writeJSON("navigation.json", navigationFile{
		Site:     model.Meta,
		Sidebar:  model.Tree,
		Warnings: model.Warnings,
	}); err != nil {
		return berrors.OutputFailed("write navigation", err)
	}

	manifest := manifestFile{
		BuildID:     result.BuildID,
		Version:     version.Version,
		GeneratedAt: result.StartTime.UTC(),
		Title:       model.Meta.Title,
		Pages:       make([]manifestPage, 0, len(pages)),
		Orphans:     model.Orphans,
		Warnings:    len(model.Warnings),
	}
	for _, pm := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel := "pages/" + pm.Target + ".json"
		if !filepath.IsLocal(filepath.FromSlash(rel)) {
			return berrors.OutputFailed("write page", fmt.Errorf("target %q escapes the output directory", pm.Target))
		}
		if err := st.writeJSON(rel, pm); err != nil {
			return berrors.OutputFailed("write page", err).WithContext("target", pm.Target)
		}
		manifest.Pages = append(manifest.Pages, manifestPage{
			Target:      pm.Target,
			URL:         pm.URL,
			SourcePath:  pm.SourcePath,
			Fingerprint: pm.Fingerprint,
		})
	}
	if err := st.writeJSON("manifest.json", manifest); err != nil {
		return berrors.OutputFailed("write manifest", err)
	}

	if err := st.finalize(); err != nil {
		return berrors.OutputFailed("promote output", err).WithContext("path", result.OutputPath)
	}
	observability.InfoContext(ctx, "output written", logfields.Path(result.OutputPath), logfields.Count(len(pages)))
	return nil
}

// ValidationKind names the rejection behind err for metrics and reports, or
// "" when err is not a validation failure.
func ValidationKind(err error) string {
	switch {
	case errors.Is(err, nav.ErrDuplicateTarget):
		return "duplicate_target"
	case errors.Is(err, nav.ErrDuplicateLabel):
		return "duplicate_label"
	case errors.Is(err, nav.ErrUnsupportedDepth):
		return "unsupported_depth"
	case errors.Is(err, nav.ErrInvalidEntry):
		return "invalid_entry"
	case errors.Is(err, site.ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, content.ErrMissingPage):
		return "missing_page"
	case berrors.IsCategory(err, berrors.CategoryValidation):
		return "metadata"
	}
	return ""
}
