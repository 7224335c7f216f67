package build

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/redirectgen/internal/config"
	"git.home.luguber.info/inful/redirectgen/internal/docs"
	ferrors "git.home.luguber.info/inful/redirectgen/internal/foundation/errors"
	"git.home.luguber.info/inful/redirectgen/internal/logfields"
	"git.home.luguber.info/inful/redirectgen/internal/metrics"
	"git.home.luguber.info/inful/redirectgen/internal/redirect"
	"git.home.luguber.info/inful/redirectgen/internal/render"
)

const staticSource = "config"

// Service generates redirect pages for one site.
type Service struct {
	cfg      *config.Config
	site     redirect.Site
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLogger sets the base logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService returns a Service for cfg and site.
func NewService(cfg *config.Config, site redirect.Site, opts ...Option) *Service {
	s := &Service{
		cfg:      cfg,
		site:     site,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// job is one declared redirect, in definition order.
type job struct {
	source string
	title  string
	build  func(*redirect.Builder) (redirect.Record, error)
	from   string
	to     string
}

type built struct {
	rec redirect.Record
	err error
}

// Run performs a full generation pass.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	result := &Result{BuildID: uuid.NewString()}
	logger := s.logger.With(logfields.BuildID(result.BuildID))

	dest := req.Destination
	if dest == "" {
		dest = s.cfg.Site.Destination
	}
	if dest == "" {
		return nil, ferrors.ConfigError("destination directory is required").Build()
	}

	var malformed atomic.Int64
	builder := redirect.NewBuilder(s.cfg.RedirectConfig(), redirect.WithMalformedHandler(func(target string, err error) {
		malformed.Add(1)
		s.recorder.IncMalformedTarget()
		logger.Warn("Malformed redirect target, using development origin", logfields.To(target), logfields.Error(err))
	}))

	logger.Info("Starting redirect generation",
		slog.String("source", s.site.SourceRoot()),
		slog.String("destination", dest),
		slog.Bool("dry_run", req.DryRun))

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "resolve destination directory").Build()
	}

	discovered, err := docs.NewDiscovery(s.site,
		docs.WithExclude(absDest),
		docs.WithLogger(logger),
	).Discover(ctx)
	if err != nil {
		return s.finish(result, start, logger, statusFor(err), err)
	}
	result.SkippedDocuments = len(discovered.Skipped)

	jobs := s.collectJobs(discovered.Documents)
	records, err := s.buildRecords(ctx, builder, jobs)
	if err != nil {
		return s.finish(result, start, logger, statusFor(err), err)
	}
	result.Malformed = int(malformed.Load())

	unique := make([]redirect.Record, 0, len(records))
	titles := make([]string, 0, len(records))
	seen := make(map[string]string, len(records))
	for i, b := range records {
		j := jobs[i]
		if b.err != nil {
			s.fail(result, logger, j, b.err)
			continue
		}
		s.recorder.IncResolution(string(b.rec.Branch))
		// Distinct permalinks such as /old and /old.html share one output file.
		out := filepath.Clean(render.DestinationPath(b.rec.Permalink))
		if first, dup := seen[out]; dup {
			result.Duplicates++
			s.recorder.IncPageResult(metrics.ResultDuplicate)
			logger.Warn("Duplicate redirect destination, keeping first definition",
				logfields.From(b.rec.Permalink),
				logfields.Path(filepath.ToSlash(out)),
				slog.String("kept", first),
				slog.String("ignored", j.source))
			continue
		}
		seen[out] = j.source
		unique = append(unique, b.rec)
		titles = append(titles, j.title)
	}

	written, err := s.writePages(ctx, dest, unique, titles, req.DryRun, result, logger)
	if err != nil {
		return s.finish(result, start, logger, statusFor(err), err)
	}
	result.Records = written

	if s.cfg.Redirects.ManifestEnabled() && !req.DryRun {
		data, err := render.Manifest(written)
		if err == nil {
			result.ManifestPath, err = render.WriteFile(dest, render.ManifestFile, data)
		}
		if err != nil {
			return s.finish(result, start, logger, StatusFailed, err)
		}
	}

	status := StatusSuccess
	if len(result.Failures) > 0 {
		status = StatusPartial
	}
	return s.finish(result, start, logger, status, nil)
}

// collectJobs lists static redirects first, then document redirects by document path.
func (s *Service) collectJobs(documents []*docs.Document) []job {
	var jobs []job
	for _, st := range s.cfg.Redirects.Static {
		jobs = append(jobs, job{
			source: staticSource,
			title:  st.Title,
			from:   st.From,
			to:     st.To,
			build: func(b *redirect.Builder) (redirect.Record, error) {
				if strings.TrimSpace(st.To) == "" {
					return redirect.Record{}, ferrors.ValidationError("static redirect is missing a target").
						WithContext("from", st.From).
						Build()
				}
				return b.FromPaths(s.site, st.From, st.To)
			},
		})
	}

	for _, doc := range documents {
		for _, from := range doc.RedirectFrom {
			jobs = append(jobs, job{
				source: doc.Path,
				title:  doc.Title,
				from:   from,
				to:     doc.URL(),
				build: func(b *redirect.Builder) (redirect.Record, error) {
					return b.RedirectFrom(doc, from)
				},
			})
		}
		if doc.RedirectTo != "" {
			jobs = append(jobs, job{
				source: doc.Path,
				title:  doc.Title,
				from:   doc.URL(),
				to:     doc.RedirectTo,
				build: func(b *redirect.Builder) (redirect.Record, error) {
					return b.RedirectTo(doc, doc.RedirectTo)
				},
			})
		}
	}
	return jobs
}

// buildRecords resolves every job concurrently. Per-job errors are kept in
// the returned slice; only cancellation aborts.
func (s *Service) buildRecords(ctx context.Context, builder *redirect.Builder, jobs []job) ([]built, error) {
	out := make([]built, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := j.build(builder)
			out[i] = built{rec: rec, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// writePages renders and writes pages concurrently and returns the records
// that made it to disk, preserving order.
func (s *Service) writePages(ctx context.Context, dest string, records []redirect.Record, titles []string, dryRun bool, result *Result, logger *slog.Logger) ([]redirect.Record, error) {
	errs := make([]error, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for i, rec := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			page, err := render.Page(rec, titles[i])
			if err != nil {
				errs[i] = err
				return nil
			}
			rel := render.DestinationPath(rec.Permalink)
			if dryRun {
				logger.Debug("Would write redirect page", logfields.From(rec.Permalink), logfields.To(rec.RedirectTo), logfields.Path(rel))
				return nil
			}
			if _, err := render.WriteFile(dest, rel, page); err != nil {
				errs[i] = err
				return nil
			}
			logger.Debug("Wrote redirect page",
				logfields.From(rec.Permalink),
				logfields.To(rec.RedirectTo),
				logfields.Branch(string(rec.Branch)),
				logfields.Path(filepath.ToSlash(rel)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	written := make([]redirect.Record, 0, len(records))
	for i, rec := range records {
		if errs[i] != nil {
			s.fail(result, logger, job{source: rec.Permalink, from: rec.RedirectFrom, to: rec.RedirectTo}, errs[i])
			continue
		}
		s.recorder.IncPageResult(metrics.ResultGenerated)
		written = append(written, rec)
	}
	return written, nil
}

func (s *Service) fail(result *Result, logger *slog.Logger, j job, err error) {
	result.Failures = append(result.Failures, Failure{Source: j.source, From: j.from, To: j.to, Err: err})
	label := metrics.ResultFailed
	if ferrors.HasCategory(err, ferrors.CategoryValidation) {
		label = metrics.ResultSkipped
	}
	s.recorder.IncPageResult(label)
	logger.Error("Skipping redirect page",
		logfields.Document(j.source),
		logfields.From(j.from),
		logfields.To(j.to),
		logfields.Error(err))
}

func (s *Service) finish(result *Result, start time.Time, logger *slog.Logger, status Status, err error) (*Result, error) {
	result.Status = status
	result.Duration = time.Since(start)
	s.recorder.ObserveRunDuration(result.Duration)
	if err != nil {
		logger.Error("Redirect generation failed", logfields.Error(err), logfields.DurationMS(float64(result.Duration.Milliseconds())))
		return result, err
	}
	s.recorder.SetRedirects(len(result.Records))
	logger.Info("Redirect generation completed",
		slog.String("status", string(status)),
		slog.Int("generated", result.Generated()),
		slog.Int("failed", len(result.Failures)),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("malformed", result.Malformed),
		logfields.DurationMS(float64(result.Duration.Milliseconds())))
	return result, nil
}

func (s *Service) concurrency() int {
	if s.cfg.Build.Concurrency > 0 {
		return s.cfg.Build.Concurrency
	}
	return 1
}

func statusFor(err error) Status {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return StatusCancelled
	}
	return StatusFailed
}
