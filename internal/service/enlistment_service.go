package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/student-enlistment-api/internal/dto"
	"github.com/noah-isme/student-enlistment-api/internal/enlistment"
	"github.com/noah-isme/student-enlistment-api/internal/models"
	"github.com/noah-isme/student-enlistment-api/internal/repository"
	appErrors "github.com/noah-isme/student-enlistment-api/pkg/errors"
	"github.com/noah-isme/student-enlistment-api/pkg/jobs"
)

type studentProfileReader interface {
	FindProfile(ctx context.Context, studentID string) (*models.StudentProfile, error)
}

type enlistmentRecordStore interface {
	ListLocked(ctx context.Context, studentID string, term models.TermRef) ([]models.EnlistmentRecord, error)
	CreatePending(ctx context.Context, batch repository.PendingEnlistment) (int, error)
}

type unitCeilingReader interface {
	ListUnitCeilings(ctx context.Context) ([]models.UnitCeiling, error)
}

type catalogProvider interface {
	Load(ctx context.Context, courseFilter string) (*enlistment.Catalog, error)
	Refresh(ctx context.Context, courseFilter string) (*enlistment.Catalog, error)
}

type catalogInvalidator interface {
	Invalidate(ctx context.Context) error
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// EnlistmentConfig tunes enlistment sessions and cap resolution.
type EnlistmentConfig struct {
	SessionTTL          time.Duration
	IrregularCap        int
	DefaultCeiling      int
	DefaultSeatCapacity int
	// SeedCeilings is used when the curriculum ceiling table is empty or unreadable.
	SeedCeilings map[enlistment.TermLevel]int
}

// EnlistmentService runs enlistment sessions: one ledger per student, held in
// memory between requests and committed on submit.
type EnlistmentService struct {
	students    studentProfileReader
	records     enlistmentRecordStore
	ceilings    unitCeilingReader
	catalogs    catalogProvider
	invalidator catalogInvalidator
	queue       jobEnqueuer
	sessions    *sessionStore
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
	config      EnlistmentConfig
}

// NewEnlistmentService wires enlistment dependencies. queue, invalidator and
// metrics may be nil.
func NewEnlistmentService(
	students studentProfileReader,
	records enlistmentRecordStore,
	ceilings unitCeilingReader,
	catalogs catalogProvider,
	invalidator catalogInvalidator,
	queue jobEnqueuer,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg EnlistmentConfig,
) *EnlistmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.DefaultSeatCapacity <= 0 {
		cfg.DefaultSeatCapacity = 40
	}
	return &EnlistmentService{
		students:    students,
		records:     records,
		ceilings:    ceilings,
		catalogs:    catalogs,
		invalidator: invalidator,
		queue:       queue,
		sessions:    newSessionStore(cfg.SessionTTL, time.Now),
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		config:      cfg,
	}
}

// Start loads the student's profile, committed subjects, catalog and unit cap
// and opens a fresh session, discarding any previous pending selection.
func (s *EnlistmentService) Start(ctx context.Context, studentID string, req dto.StartSessionRequest) (*dto.SessionView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	loaded, err := s.loadSession(ctx, studentID, NormalizeCourseFilter(req.CourseFilter), false)
	if err != nil {
		return nil, err
	}

	session := s.sessions.Attach(loaded)
	session.mu.Lock()
	defer session.mu.Unlock()
	if session != loaded {
		session.reset(loaded)
	}
	expiresAt, count := s.sessions.Save(session)
	s.metrics.SetActiveSessions(count)

	view := buildSessionView(session, expiresAt)
	return &view, nil
}

// Session returns the current selection and summary.
func (s *EnlistmentService) Session(ctx context.Context, studentID string) (*dto.SessionView, error) {
	session, expiresAt, err := s.session(studentID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	view := buildSessionView(session, expiresAt)
	return &view, nil
}

// Offerings lists the session catalog annotated with each row's standing.
func (s *EnlistmentService) Offerings(ctx context.Context, studentID string, filter dto.OfferingFilter) ([]dto.OfferingView, *models.Pagination, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid offering filter")
	}
	session, _, err := s.session(studentID)
	if err != nil {
		return nil, nil, err
	}

	session.mu.Lock()
	views := annotateOfferings(session.ledger, filter)
	session.mu.Unlock()

	if filter.PageSize <= 0 {
		return views, nil, nil
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pagination := &models.Pagination{Page: page, PageSize: filter.PageSize, TotalCount: len(views)}
	start := (page - 1) * filter.PageSize
	if start >= len(views) {
		return []dto.OfferingView{}, pagination, nil
	}
	end := min(start+filter.PageSize, len(views))
	return views[start:end], pagination, nil
}

// Add admits a subject section into the pending selection.
func (s *EnlistmentService) Add(ctx context.Context, studentID string, req dto.SelectionRequest) (*dto.SessionView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload")
	}
	return s.mutate(studentID, "add", func(ledger *enlistment.Ledger) error {
		return ledger.TryAdd(enlistment.NewKey(req.Code, req.Section))
	})
}

// Remove drops a pending subject section.
func (s *EnlistmentService) Remove(ctx context.Context, studentID string, req dto.SelectionRequest) (*dto.SessionView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload")
	}
	return s.mutate(studentID, "remove", func(ledger *enlistment.Ledger) error {
		return ledger.TryRemove(enlistment.NewKey(req.Code, req.Section))
	})
}

// Clear drops every pending subject section.
func (s *EnlistmentService) Clear(ctx context.Context, studentID string) (*dto.SessionView, error) {
	return s.mutate(studentID, "clear", func(ledger *enlistment.Ledger) error {
		ledger.ClearPending()
		return nil
	})
}

func (s *EnlistmentService) mutate(studentID, operation string, apply func(*enlistment.Ledger) error) (*dto.SessionView, error) {
	session, expiresAt, err := s.session(studentID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if err := apply(session.ledger); err != nil {
		outcome := OutcomeError
		if reason, ok := enlistment.ReasonOf(err); ok {
			outcome = string(reason)
		}
		s.metrics.RecordEnlistmentAttempt(operation, outcome)
		return nil, rejectionError(err)
	}
	s.metrics.RecordEnlistmentAttempt(operation, OutcomeAccepted)
	view := buildSessionView(session, expiresAt)
	return &view, nil
}

// Submit commits the pending selection as PEN enlistment rows and reloads the
// session from the database.
func (s *EnlistmentService) Submit(ctx context.Context, studentID string) (*dto.SubmissionResult, error) {
	session, _, err := s.session(studentID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	pending := session.ledger.Pending()
	if len(pending) == 0 {
		s.metrics.RecordSubmission(appErrors.ErrNothingToSubmit.Code, 0)
		return nil, appErrors.ErrNothingToSubmit
	}

	// The cap is resolved again from the current student record; the
	// session may have been opened before a status change.
	profile, err := s.profile(ctx, studentID)
	if err != nil {
		return nil, err
	}
	unitCap := s.resolveCap(ctx, profile)
	catalog := session.ledger.Catalog()
	if total := catalog.Units(session.ledger.ActiveSelection()); total > float64(unitCap) {
		s.metrics.RecordSubmission(appErrors.ErrUnitCapExceeded.Code, 0)
		return nil, appErrors.Clone(appErrors.ErrUnitCapExceeded, "selection exceeds the unit limit").
			WithDetail("units", total).
			WithDetail("unitCap", unitCap)
	}

	referenceID := uuid.NewString()
	inserted, err := s.records.CreatePending(ctx, repository.PendingEnlistment{
		StudentID:           studentID,
		Term:                termOf(*profile),
		Keys:                pending,
		ReferenceID:         referenceID,
		DefaultSeatCapacity: s.config.DefaultSeatCapacity,
	})
	if err != nil {
		var full *repository.SeatsExhaustedError
		if errors.As(err, &full) {
			s.metrics.RecordSubmission(appErrors.ErrSectionFull.Code, 0)
			return nil, appErrors.Clone(appErrors.ErrSectionFull, "section "+full.Key.String()+" filled up before submission").
				WithDetail("key", full.Key)
		}
		s.metrics.RecordSubmission(OutcomeError, 0)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit enlistment")
	}
	s.metrics.RecordSubmission(OutcomeAccepted, inserted)
	s.logger.Info("enlistment submitted",
		zap.String("student_id", studentID),
		zap.String("reference_id", referenceID),
		zap.Int("submitted", inserted),
		zap.Int("skipped", len(pending)-inserted))
	s.scheduleCatalogInvalidation(ctx, referenceID)

	// The session is re-initialised in place so operations already waiting on
	// its lock apply to the reloaded ledger.
	reloaded, err := s.loadSession(ctx, studentID, session.courseFilter, true)
	if err != nil {
		s.logger.Warn("failed to reload session after submission",
			zap.String("student_id", studentID),
			zap.String("reference_id", referenceID),
			zap.Error(err))
		session.ledger.Initialize(catalog, session.ledger.ActiveSelection(), unitCap)
	} else {
		session.reset(reloaded)
	}
	expiresAt, count := s.sessions.Save(session)
	s.metrics.SetActiveSessions(count)

	return &dto.SubmissionResult{
		ReferenceID: referenceID,
		Submitted:   inserted,
		Skipped:     len(pending) - inserted,
		Session:     buildSessionView(session, expiresAt),
	}, nil
}

// Snapshot returns the active selection with resolved offerings for
// rendering the registration form. Without a live session the committed
// subjects are loaded directly.
func (s *EnlistmentService) Snapshot(ctx context.Context, studentID string) (*dto.SessionView, error) {
	if session, expiresAt, ok := s.sessions.Get(studentID); ok {
		session.mu.Lock()
		defer session.mu.Unlock()
		view := buildSessionView(session, expiresAt)
		return &view, nil
	}
	session, err := s.loadSession(ctx, studentID, models.CourseFilterAll, false)
	if err != nil {
		return nil, err
	}
	view := buildSessionView(session, time.Time{})
	return &view, nil
}

func (s *EnlistmentService) session(studentID string) (*enlistmentSession, time.Time, error) {
	session, expiresAt, ok := s.sessions.Get(studentID)
	if !ok {
		return nil, time.Time{}, appErrors.ErrSessionNotFound
	}
	return session, expiresAt, nil
}

func (s *EnlistmentService) loadSession(ctx context.Context, studentID, courseFilter string, fresh bool) (*enlistmentSession, error) {
	profile, err := s.profile(ctx, studentID)
	if err != nil {
		return nil, err
	}

	records, err := s.records.ListLocked(ctx, studentID, termOf(*profile))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enlisted subjects")
	}

	var catalog *enlistment.Catalog
	if fresh {
		catalog, err = s.catalogs.Refresh(ctx, courseFilter)
	} else {
		catalog, err = s.catalogs.Load(ctx, courseFilter)
	}
	if err != nil {
		return nil, err
	}

	locked := make([]enlistment.Key, 0, len(records))
	for _, record := range records {
		key := enlistment.NewKey(record.SubjectCode, record.Section)
		if _, ok := catalog.Lookup(key); !ok {
			s.logger.Warn("enlisted subject missing from catalog",
				zap.String("student_id", studentID),
				zap.String("offering", key.String()),
				zap.String("course_filter", courseFilter))
		}
		locked = append(locked, key)
	}

	ledger := enlistment.NewLedger()
	ledger.Initialize(catalog, locked, s.resolveCap(ctx, profile))
	return &enlistmentSession{
		studentID:    studentID,
		profile:      *profile,
		courseFilter: courseFilter,
		ledger:       ledger,
	}, nil
}

func (s *EnlistmentService) profile(ctx context.Context, studentID string) (*models.StudentProfile, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, appErrors.ErrUnauthorized
	}
	profile, err := s.students.FindProfile(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return profile, nil
}

// resolveCap applies the unit cap policy. An unreadable registration status or
// semester yields a zero cap so the student cannot enlist on bad data.
func (s *EnlistmentService) resolveCap(ctx context.Context, profile *models.StudentProfile) int {
	status, err := enlistment.ParseRegistrationStatus(profile.RegistrationStatus)
	if err != nil {
		s.logger.Warn("unknown registration status", zap.String("student_id", profile.StudentID), zap.Error(err))
		return 0
	}
	semester, err := enlistment.ParseSemester(profile.Semester)
	if err != nil {
		s.logger.Warn("invalid semester on student record", zap.String("student_id", profile.StudentID), zap.Error(err))
		return 0
	}
	policy := enlistment.NewCapPolicy(s.config.IrregularCap, s.config.DefaultCeiling, s.ceilingTable(ctx))
	return policy.Resolve(profile.YearLevel, semester, status)
}

func (s *EnlistmentService) ceilingTable(ctx context.Context) map[enlistment.TermLevel]int {
	if s.ceilings != nil {
		rows, err := s.ceilings.ListUnitCeilings(ctx)
		if err != nil {
			s.logger.Warn("falling back to seed unit ceilings", zap.Error(err))
		} else if len(rows) > 0 {
			table := make(map[enlistment.TermLevel]int, len(rows))
			for _, row := range rows {
				table[enlistment.TermLevel{Semester: enlistment.Semester(row.Semester), YearLevel: row.YearLevel}] = row.MaxUnits
			}
			return table
		}
	}
	table := make(map[enlistment.TermLevel]int, len(s.config.SeedCeilings))
	for level, units := range s.config.SeedCeilings {
		table[level] = units
	}
	return table
}

func (s *EnlistmentService) scheduleCatalogInvalidation(ctx context.Context, referenceID string) {
	if s.queue != nil {
		err := s.queue.Enqueue(jobs.Job{ID: referenceID, Type: JobInvalidateCatalog})
		if err == nil {
			return
		}
		s.logger.Warn("catalog invalidation not queued, running inline", zap.Error(err))
	}
	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx); err != nil {
			s.logger.Warn("catalog invalidation failed", zap.Error(err))
		}
	}
}

func termOf(profile models.StudentProfile) models.TermRef {
	return models.TermRef{Semester: profile.Semester, SchoolYear: profile.SchoolYear}
}
