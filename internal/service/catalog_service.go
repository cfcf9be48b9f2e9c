package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/student-enlistment-api/internal/enlistment"
	"github.com/noah-isme/student-enlistment-api/internal/models"
	appErrors "github.com/noah-isme/student-enlistment-api/pkg/errors"
	"github.com/noah-isme/student-enlistment-api/pkg/jobs"
)

const (
	catalogCachePrefix = "catalog:"
	// JobInvalidateCatalog drops every cached catalog after seat counts change.
	JobInvalidateCatalog = "catalog.invalidate"
	defaultRoom          = "TBA"
)

type offeringRowReader interface {
	ListRows(ctx context.Context, courseFilter string) ([]models.OfferingRow, error)
}

type catalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

// CatalogConfig tunes catalog assembly and caching.
type CatalogConfig struct {
	DefaultSeatCapacity int
	CacheTTL            time.Duration
}

// CatalogService assembles the term's offerings from the subject view and
// caches them per course filter.
type CatalogService struct {
	rows   offeringRowReader
	cache  catalogCache
	logger *zap.Logger
	config CatalogConfig
}

// NewCatalogService constructs the catalog service. cache may be nil.
func NewCatalogService(rows offeringRowReader, cache catalogCache, logger *zap.Logger, config CatalogConfig) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.DefaultSeatCapacity <= 0 {
		config.DefaultSeatCapacity = 40
	}
	return &CatalogService{rows: rows, cache: cache, logger: logger, config: config}
}

// NormalizeCourseFilter maps an empty filter to ALL and upper-cases the rest.
func NormalizeCourseFilter(filter string) string {
	filter = strings.ToUpper(strings.TrimSpace(filter))
	if filter == "" {
		return models.CourseFilterAll
	}
	return filter
}

// Load returns the catalog for the course filter, from cache when possible.
func (s *CatalogService) Load(ctx context.Context, courseFilter string) (*enlistment.Catalog, error) {
	courseFilter = NormalizeCourseFilter(courseFilter)
	key := catalogCachePrefix + courseFilter
	if s.cache != nil {
		var cached []enlistment.Offering
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			catalog, err := enlistment.NewCatalog(cached)
			if err == nil {
				return catalog, nil
			}
			s.logger.Warn("cached catalog rejected", zap.String("course_filter", courseFilter), zap.Error(err))
		}
	}
	return s.Refresh(ctx, courseFilter)
}

// Refresh rebuilds the catalog from the database and replaces the cache entry.
func (s *CatalogService) Refresh(ctx context.Context, courseFilter string) (*enlistment.Catalog, error) {
	courseFilter = NormalizeCourseFilter(courseFilter)
	rows, err := s.rows.ListRows(ctx, courseFilter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load offerings")
	}
	offerings := s.groupRows(rows)
	catalog, err := enlistment.NewCatalog(offerings)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "offering catalog is inconsistent")
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, catalogCachePrefix+courseFilter, offerings, s.config.CacheTTL)
	}
	return catalog, nil
}

// Invalidate drops every cached catalog.
func (s *CatalogService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, catalogCachePrefix+"*")
}

// HandleJob is the background queue handler for catalog maintenance jobs.
func (s *CatalogService) HandleJob(ctx context.Context, job jobs.Job) error {
	switch job.Type {
	case JobInvalidateCatalog:
		return s.Invalidate(ctx)
	default:
		return fmt.Errorf("unknown catalog job type %q", job.Type)
	}
}

// groupRows merges the per-meeting rows of each section into one offering,
// keeping first-seen order. Meeting clauses are joined with the schedule
// clause separator.
func (s *CatalogService) groupRows(rows []models.OfferingRow) []enlistment.Offering {
	type draft struct {
		offering enlistment.Offering
		clauses  []string
	}
	var order []enlistment.Key
	drafts := make(map[enlistment.Key]*draft)
	for _, row := range rows {
		key := enlistment.NewKey(row.SubjectCode, row.Section)
		if key.IsZero() || row.Units < 0 {
			s.logger.Warn("skipping invalid offering row", zap.String("code", row.SubjectCode), zap.String("section", row.Section))
			continue
		}
		d, ok := drafts[key]
		if !ok {
			d = &draft{offering: enlistment.Offering{
				Key:        key,
				Title:      strings.TrimSpace(row.SubjectTitle),
				Units:      row.Units,
				CourseID:   row.CourseID,
				SeatsTaken: intOr(row.FilledSlots, 0),
				SeatsTotal: intOr(row.TotalSlots, s.config.DefaultSeatCapacity),
			}}
			drafts[key] = d
			order = append(order, key)
		}
		if clause := meetingClause(row); clause != "" {
			d.clauses = append(d.clauses, clause)
		}
		if d.offering.Instructor == "" {
			d.offering.Instructor = instructorName(row)
		}
		if d.offering.Room == "" && row.Room != nil {
			d.offering.Room = strings.TrimSpace(*row.Room)
		}
	}

	offerings := make([]enlistment.Offering, 0, len(order))
	for _, key := range order {
		d := drafts[key]
		d.offering.ScheduleText = strings.Join(d.clauses, enlistment.ClauseSeparator)
		parsed := enlistment.ParseSchedule(d.offering.ScheduleText)
		for _, dropped := range parsed.Dropped {
			s.logger.Warn("dropped schedule clause",
				zap.String("offering", key.String()),
				zap.String("clause", dropped.Clause),
				zap.Error(dropped.Reason))
		}
		d.offering.Schedule = parsed.Intervals
		if d.offering.Room == "" {
			d.offering.Room = defaultRoom
		}
		if d.offering.SeatsTaken < 0 {
			d.offering.SeatsTaken = 0
		}
		if d.offering.SeatsTotal < 0 {
			d.offering.SeatsTotal = 0
		}
		offerings = append(offerings, d.offering)
	}
	return offerings
}

func meetingClause(row models.OfferingRow) string {
	day := strings.TrimSpace(stringOr(row.DayOfWeek))
	start := strings.TrimSpace(stringOr(row.TimeStart))
	end := strings.TrimSpace(stringOr(row.TimeEnd))
	if day == "" && start == "" && end == "" {
		return ""
	}
	return fmt.Sprintf("%s %s - %s", day, start, end)
}

func instructorName(row models.OfferingRow) string {
	first := strings.TrimSpace(stringOr(row.FacultyFirstName))
	last := strings.TrimSpace(stringOr(row.FacultyLastName))
	return strings.TrimSpace(first + " " + last)
}

func stringOr(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func intOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}
