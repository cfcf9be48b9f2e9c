package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/student-enlistment-api/internal/dto"
	"github.com/noah-isme/student-enlistment-api/internal/enlistment"
	"github.com/noah-isme/student-enlistment-api/internal/models"
	"github.com/noah-isme/student-enlistment-api/internal/repository"
	appErrors "github.com/noah-isme/student-enlistment-api/pkg/errors"
	"github.com/noah-isme/student-enlistment-api/pkg/jobs"
)

type fakeStudentProfiles struct {
	profile *models.StudentProfile
	err     error
}

func (f *fakeStudentProfiles) FindProfile(ctx context.Context, studentID string) (*models.StudentProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	profile := *f.profile
	return &profile, nil
}

type fakeEnlistmentStore struct {
	locked    []models.EnlistmentRecord
	listErr   error
	createErr error
	skip      int
	batches   []repository.PendingEnlistment
	entered   chan struct{}
	release   chan struct{}
}

func (f *fakeEnlistmentStore) ListLocked(ctx context.Context, studentID string, term models.TermRef) ([]models.EnlistmentRecord, error) {
	return f.locked, f.listErr
}

func (f *fakeEnlistmentStore) CreatePending(ctx context.Context, batch repository.PendingEnlistment) (int, error) {
	f.batches = append(f.batches, batch)
	if f.entered != nil {
		close(f.entered)
		<-f.release
	}
	if f.createErr != nil {
		return 0, f.createErr
	}
	for _, key := range batch.Keys[f.skip:] {
		f.locked = append(f.locked, models.EnlistmentRecord{
			StudentID:   batch.StudentID,
			SubjectCode: key.Code,
			Section:     key.Section,
			Status:      models.EnlistmentStatusPending,
			ReferenceID: batch.ReferenceID,
		})
	}
	return len(batch.Keys) - f.skip, nil
}

type fakeUnitCeilings struct {
	rows []models.UnitCeiling
	err  error
}

func (f *fakeUnitCeilings) ListUnitCeilings(ctx context.Context) ([]models.UnitCeiling, error) {
	return f.rows, f.err
}

type fakeCatalogProvider struct {
	catalog   *enlistment.Catalog
	loads     int
	refreshes int
}

func (f *fakeCatalogProvider) Load(ctx context.Context, courseFilter string) (*enlistment.Catalog, error) {
	f.loads++
	return f.catalog, nil
}

func (f *fakeCatalogProvider) Refresh(ctx context.Context, courseFilter string) (*enlistment.Catalog, error) {
	f.refreshes++
	return f.catalog, nil
}

type fakeJobQueue struct {
	jobs []jobs.Job
	err  error
}

func (f *fakeJobQueue) Enqueue(job jobs.Job) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

type fakeCatalogInvalidator struct {
	calls int
}

func (f *fakeCatalogInvalidator) Invalidate(ctx context.Context) error {
	f.calls++
	return nil
}

type enlistmentFixture struct {
	svc         *EnlistmentService
	students    *fakeStudentProfiles
	store       *fakeEnlistmentStore
	ceilings    *fakeUnitCeilings
	catalogs    *fakeCatalogProvider
	queue       *fakeJobQueue
	invalidator *fakeCatalogInvalidator
	metrics     *MetricsService
	logs        *observer.ObservedLogs
}

func testOffering(code, section string, units float64, schedule string, taken, total int) enlistment.Offering {
	return enlistment.Offering{
		Key:          enlistment.NewKey(code, section),
		Title:        code + " lecture",
		Units:        units,
		ScheduleText: schedule,
		Schedule:     enlistment.ParseSchedule(schedule).Intervals,
		SeatsTaken:   taken,
		SeatsTotal:   total,
	}
}

func newEnlistmentFixture(t *testing.T) *enlistmentFixture {
	t.Helper()
	catalog, err := enlistment.NewCatalog([]enlistment.Offering{
		testOffering("CS101", "A", 3, "MWF 08:00AM-09:00AM", 10, 40),
		testOffering("CS101", "B", 3, "TTH 08:00AM-09:30AM", 0, 40),
		testOffering("MATH1", "A", 3, "MWF 08:30AM-09:30AM", 5, 40),
		testOffering("PE1", "A", 2, "S 07:00AM-09:00AM", 40, 40),
		testOffering("ENG1", "A", 3, "TTH 10:00AM-11:30AM", 20, 40),
	})
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	f := &enlistmentFixture{
		students: &fakeStudentProfiles{profile: &models.StudentProfile{
			StudentID:          "2024-0001",
			FirstName:          "Ana",
			LastName:           "Reyes",
			CourseID:           "BSCS",
			YearLevel:          1,
			Semester:           1,
			SchoolYear:         "2024-2025",
			RegistrationStatus: "Regular",
		}},
		store: &fakeEnlistmentStore{locked: []models.EnlistmentRecord{
			{StudentID: "2024-0001", SubjectCode: "ENG1", Section: "A", Status: models.EnlistmentStatusApproved},
		}},
		ceilings:    &fakeUnitCeilings{},
		catalogs:    &fakeCatalogProvider{catalog: catalog},
		queue:       &fakeJobQueue{},
		invalidator: &fakeCatalogInvalidator{},
		metrics:     NewMetricsService(),
		logs:        logs,
	}
	f.svc = NewEnlistmentService(f.students, f.store, f.ceilings, f.catalogs, f.invalidator, f.queue, f.metrics, nil, zap.New(core), EnlistmentConfig{
		IrregularCap:   18,
		DefaultCeiling: 24,
		SeedCeilings: map[enlistment.TermLevel]int{
			{Semester: enlistment.FirstSemester, YearLevel: 1}:  21,
			{Semester: enlistment.SecondSemester, YearLevel: 3}: 12,
		},
	})
	return f
}

func (f *enlistmentFixture) start(t *testing.T) *dto.SessionView {
	t.Helper()
	view, err := f.svc.Start(context.Background(), "2024-0001", dto.StartSessionRequest{})
	require.NoError(t, err)
	return view
}

func selection(code, section string) dto.SelectionRequest {
	return dto.SelectionRequest{Code: code, Section: section}
}

func requireAppError(t *testing.T, err error, expected *appErrors.Error) *appErrors.Error {
	t.Helper()
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr)
	require.Equal(t, expected.Code, appErr.Code)
	assert.Equal(t, expected.Status, appErr.Status)
	return appErr
}

func TestEnlistmentServiceStartLoadsLockedSubjectsAndCap(t *testing.T) {
	f := newEnlistmentFixture(t)

	view := f.start(t)

	assert.Equal(t, "Reyes, Ana", view.Student.Name)
	assert.Equal(t, models.CourseFilterAll, view.CourseFilter)
	require.Len(t, view.Locked, 1)
	assert.Equal(t, "ENG1", view.Locked[0].Code)
	assert.True(t, view.Locked[0].Locked)
	assert.Empty(t, view.Pending)
	assert.Equal(t, 21, view.Summary.UnitCap)
	assert.Equal(t, float64(3), view.Summary.TotalUnits)
	assert.Equal(t, float64(18), view.Summary.RemainingCapacity)
	assert.False(t, view.ExpiresAt.IsZero())
	assert.Equal(t, 1, f.catalogs.loads)
}

func TestEnlistmentServiceRequiresSession(t *testing.T) {
	f := newEnlistmentFixture(t)

	_, err := f.svc.Session(context.Background(), "2024-0001")
	requireAppError(t, err, appErrors.ErrSessionNotFound)

	_, err = f.svc.Add(context.Background(), "2024-0001", selection("CS101", "A"))
	requireAppError(t, err, appErrors.ErrSessionNotFound)

	_, err = f.svc.Submit(context.Background(), "2024-0001")
	requireAppError(t, err, appErrors.ErrSessionNotFound)
}

func TestEnlistmentServiceUnknownStudent(t *testing.T) {
	f := newEnlistmentFixture(t)
	f.students.err = sql.ErrNoRows

	_, err := f.svc.Start(context.Background(), "missing", dto.StartSessionRequest{})
	requireAppError(t, err, appErrors.ErrNotFound)
}

func TestEnlistmentServiceAddAndRejections(t *testing.T) {
	f := newEnlistmentFixture(t)
	f.start(t)
	ctx := context.Background()

	view, err := f.svc.Add(ctx, "2024-0001", selection("cs101", " A "))
	require.NoError(t, err)
	require.Len(t, view.Pending, 1)
	assert.Equal(t, "CS101", view.Pending[0].Code)
	assert.Equal(t, float64(6), view.Summary.TotalUnits)

	_, err = f.svc.Add(ctx, "2024-0001", selection("MATH1", "A"))
	appErr := requireAppError(t, err, appErrors.ErrScheduleConflict)
	assert.Equal(t, enlistment.NewKey("CS101", "A"), appErr.Details["conflictingKey"])
	assert.Equal(t, enlistment.DaySet{enlistment.Monday, enlistment.Wednesday, enlistment.Friday}, appErr.Details["conflictDays"])

	_, err = f.svc.Add(ctx, "2024-0001", selection("CS101", "B"))
	appErr = requireAppError(t, err, appErrors.ErrSubjectAlreadySelected)
	assert.Equal(t, enlistment.NewKey("CS101", "A"), appErr.Details["selectedKey"])

	_, err = f.svc.Add(ctx, "2024-0001", selection("PE1", "A"))
	requireAppError(t, err, appErrors.ErrSectionFull)

	_, err = f.svc.Add(ctx, "2024-0001", selection("ENG1", "A"))
	requireAppError(t, err, appErrors.ErrAlreadyLocked)

	_, err = f.svc.Add(ctx, "2024-0001", selection("BIO9", "Z"))
	requireAppError(t, err, appErrors.ErrUnknownOffering)

	_, err = f.svc.Add(ctx, "2024-0001", selection("", "A"))
	requireAppError(t, err, appErrors.ErrValidation)

	view, err = f.svc.Session(ctx, "2024-0001")
	require.NoError(t, err)
	assert.Len(t, view.Pending, 1)
}

func TestEnlistmentServiceRemoveAndClear(t *testing.T) {
	f := newEnlistmentFixture(t)
	f.start(t)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, "2024-0001", selection("CS101", "A"))
	require.NoError(t, err)

	_, err = f.svc.Remove(ctx, "2024-0001", selection("ENG1", "A"))
	requireAppError(t, err, appErrors.ErrNotRemovable)

	_, err = f.svc.Remove(ctx, "2024-0001", selection("MATH1", "A"))
	requireAppError(t, err, appErrors.ErrNotSelected)

	view, err := f.svc.Remove(ctx, "2024-0001", selection("CS101", "A"))
	require.NoError(t, err)
	assert.Empty(t, view.Pending)

	_, err = f.svc.Add(ctx, "2024-0001", selection("MATH1", "A"))
	require.NoError(t, err)
	view, err = f.svc.Clear(ctx, "2024-0001")
	require.NoError(t, err)
	assert.Empty(t, view.Pending)
	assert.Len(t, view.Locked, 1)
}

func TestEnlistmentServiceOfferingsAnnotation(t *testing.T) {
	f := newEnlistmentFixture(t)
	f.start(t)
	ctx := context.Background()
	_, err := f.svc.Add(ctx, "2024-0001", selection("CS101", "A"))
	require.NoError(t, err)

	views, pagination, err := f.svc.Offerings(ctx, "2024-0001", dto.OfferingFilter{})
	require.NoError(t, err)
	assert.Nil(t, pagination)
	statuses := map[string]string{}
	for _, view := range views {
		statuses[view.Key.String()] = view.Status
	}
	assert.Equal(t, map[string]string{
		"CS101-A": dto.OfferingStatusPending,
		"CS101-B": string(enlistment.ReasonSubjectAlreadySelected),
		"MATH1-A": string(enlistment.ReasonScheduleConflict),
		"PE1-A":   string(enlistment.ReasonSectionFull),
		"ENG1-A":  dto.OfferingStatusLocked,
	}, statuses)
	assert.Equal(t, "10/40", views[0].Slots)
	assert.Equal(t, 30, views[0].RemainingSeats)

	views, _, err = f.svc.Offerings(ctx, "2024-0001", dto.OfferingFilter{AvailableOnly: true})
	require.NoError(t, err)
	assert.Len(t, views, 4)

	views, _, err = f.svc.Offerings(ctx, "2024-0001", dto.OfferingFilter{Search: "math"})
	require.NoError(t, err)
	keys := make([]string, 0, len(views))
	for _, view := range views {
		keys = append(keys, view.Key.String())
	}
	assert.Equal(t, []string{"CS101-A", "MATH1-A", "ENG1-A"}, keys)
	assert.NotEmpty(t, views[1].Message)

	views, pagination, err = f.svc.Offerings(ctx, "2024-0001", dto.OfferingFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.NotNil(t, pagination)
	assert.Equal(t, 5, pagination.TotalCount)
	require.Len(t, views, 2)
	assert.Equal(t, "MATH1-A", views[0].Key.String())

	views, _, err = f.svc.Offerings(ctx, "2024-0001", dto.OfferingFilter{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestEnlistmentServiceSubmit(t *testing.T) {
	f := newEnlistmentFixture(t)
	f.start(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, "2024-0001")
	requireAppError(t, err, appErrors.ErrNothingToSubmit)

	_, err = f.svc.Add(ctx, "2024-0001", selection("CS101", "A"))
	require.NoError(t, err)

	result, err := f.svc.Submit(ctx, "2024-0001")
	require.NoError(t, err)
	assert.NotEmpty(t, result.ReferenceID)
	assert.Equal(t, 1, result.Submitted)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Session.Pending)
	assert.Len(t, result.Session.Locked, 2)

	require.Len(t, f.store.batches, 1)
	batch := f.store.batches[0]
	assert.Equal(t, "2024-0001", batch.StudentID)
	assert.Equal(t, models.TermRef{Semester: 1, SchoolYear: "2024-2025"}, batch.Term)
	assert.Equal(t, []enlistment.Key{enlistment.NewKey("CS101", "A")}, batch.Keys)
	assert.Equal(t, result.ReferenceID, batch.ReferenceID)
	assert.Equal(t, 40, batch.DefaultSeatCapacity)

	assert.Equal(t, 1, f.catalogs.refreshes)
	require.Len(t, f.queue.jobs, 1)
	assert.Equal(t, JobInvalidateCatalog, f.queue.jobs[0].Type)
	assert.Zero(t, f.invalidator.calls)

	view, err := f.svc.Session(ctx, "2024-0001")
	require.NoError(t, err)
	assert.Len(t, view.Locked, 2)
}

func selectionKeys(items []dto.SelectionItem) []string {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Code+"-"+item.Section)
	}
	return keys
}

func TestEnlistmentServiceSubmitKeepsSelectionMadeDuringSubmit(t *testing.T) {
	f := newEnlistmentFixture(t)
	f.start(t)
	ctx := context.Background()
	_, err := f.svc.Add(ctx, "2024-0001", selection("MATH1", "A"))
	require.NoError(t, err)

	f.store.entered = make(chan struct{})
	f.store.release = make(chan struct{})
	submitted := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(ctx, "2024-0001")
		submitted <- err
	}()
	<-f.store.entered

	added := make(chan error, 1)
	go func() {
		_, err := f.svc.Add(ctx, "2024-0001", selection("CS101", "B"))
		added <- err
	}()
	time.Sleep(20 * time.Millisecond)
	close(f.store.release)

	require.NoError(t, <-submitted)
	require.NoError(t, <-added)

	view, err := f.svc.Session(ctx, "2024-0001")
	require.NoError(t, err)
	assert.Equal(t, []string{"ENG1-A", "MATH1-A"}, selectionKeys(view.Locked))
	assert.Equal(t, []string{"CS101-B"}, selectionKeys(view.Pending))
}

func TestEnlistmentServiceSubmitSucceedsWhenReloadFails(t *testing.T) {
	f := newEnlistmentFixture(t)
	f.start(t)
	ctx := context.Background()
	_, err := f.svc.Add(ctx, "2024-0001", selection("CS101", "A"))
	require.NoError(t, err)

	f.store.listErr = errors.New("connection reset")
	result, err := f.svc.Submit(ctx, "2024-0001")
	require.NoError(t, err)
	assert.NotEmpty(t, result.ReferenceID)
	assert.Equal(t, 1, result.Submitted)
	assert.Empty(t, result.Session.Pending)
	assert.Equal(t, []string{"ENG1-A", "CS101-A"}, selectionKeys(result.Session.Locked))

	entries := f.logs.FilterMessage("failed to reload session after submission").All()
	require.Len(t, entries, 1)
	assert.Equal(t, result.ReferenceID, entries[0].ContextMap()["reference_id"])

	view, err := f.svc.Session(ctx, "2024-0001")
	require.NoError(t, err)
	assert.Len(t, view.Locked, 2)
}

func TestEnlistmentServiceSubmitReportsSkippedRows(t *testing.T) {
	f := newEnlistmentFixture(t)
	f.store.skip = 1
	f.start(t)
	ctx := context.Background()
	_, err := f.svc.Add(ctx, "2024-0001", selection("CS101", "B"))
	require.NoError(t, err)
	_, err = f.svc.Add(ctx, "2024-0001", selection("MATH1", "A"))
	require.NoError(t, err)

	result, err := f.svc.Submit(ctx, "2024-0001")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Submitted)
	assert.Equal(t, 1, result.Skipped)
}

func TestEnlistmentServiceSubmitSectionFilledMeanwhile(t *testing.T) {
	f := newEnlistmentFixture(t)
	f.store.createErr = &repository.SeatsExhaustedError{Key: enlistment.NewKey("CS101", "A")}
	f.start(t)
	ctx := context.Background()
	_, err := f.svc.Add(ctx, "2024-0001", selection("CS101", "A"))
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, "2024-0001")
	appErr := requireAppError(t, err, appErrors.ErrSectionFull)
	assert.Equal(t, enlistment.NewKey("CS101", "A"), appErr.Details["key"])

	view, err := f.svc.Session(ctx, "2024-0001")
	require.NoError(t, err)
	assert.Len(t, view.Pending, 1)
	assert.Empty(t, f.queue.jobs)
}

func TestEnlistmentServiceSubmitStoreFailure(t *testing.T) {
	f := newEnlistmentFixture(t)
	f.store.createErr = errors.New("connection reset")
	f.start(t)
	ctx := context.Background()
	_, err := f.svc.Add(ctx, "2024-0001", selection("CS101", "A"))
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, "2024-0001")
	requireAppError(t, err, appErrors.ErrInternal)
}

func TestEnlistmentServiceSubmitRechecksCap(t *testing.T) {
	f := newEnlistmentFixture(t)
	f.start(t)
	ctx := context.Background()
	_, err := f.svc.Add(ctx, "2024-0001", selection("CS101", "A"))
	require.NoError(t, err)

	f.students.profile.RegistrationStatus = "ON LEAVE"
	_, err = f.svc.Submit(ctx, "2024-0001")
	appErr := requireAppError(t, err, appErrors.ErrUnitCapExceeded)
	assert.Equal(t, 0, appErr.Details["unitCap"])
	assert.Empty(t, f.store.batches)
}

func TestEnlistmentServiceQueueFullInvalidatesInline(t *testing.T) {
	f := newEnlistmentFixture(t)
	f.queue.err = jobs.ErrQueueFull
	f.start(t)
	ctx := context.Background()
	_, err := f.svc.Add(ctx, "2024-0001", selection("CS101", "A"))
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, "2024-0001")
	require.NoError(t, err)
	assert.Equal(t, 1, f.invalidator.calls)
}

func TestEnlistmentServiceCapResolution(t *testing.T) {
	t.Run("irregular is limited", func(t *testing.T) {
		f := newEnlistmentFixture(t)
		f.students.profile.RegistrationStatus = "IRREGULAR"
		assert.Equal(t, 18, f.start(t).Summary.UnitCap)
	})

	t.Run("irregular below a small ceiling", func(t *testing.T) {
		f := newEnlistmentFixture(t)
		f.students.profile.RegistrationStatus = "irregular"
		f.students.profile.Semester = 2
		f.students.profile.YearLevel = 3
		assert.Equal(t, 12, f.start(t).Summary.UnitCap)
	})

	t.Run("missing ceiling uses default", func(t *testing.T) {
		f := newEnlistmentFixture(t)
		f.students.profile.YearLevel = 5
		assert.Equal(t, 24, f.start(t).Summary.UnitCap)
	})

	t.Run("database ceilings win over seed", func(t *testing.T) {
		f := newEnlistmentFixture(t)
		f.ceilings.rows = []models.UnitCeiling{{Semester: 1, YearLevel: 1, MaxUnits: 15}}
		assert.Equal(t, 15, f.start(t).Summary.UnitCap)
	})

	t.Run("unreadable ceilings fall back to seed", func(t *testing.T) {
		f := newEnlistmentFixture(t)
		f.ceilings.err = errors.New("relation does not exist")
		assert.Equal(t, 21, f.start(t).Summary.UnitCap)
		assert.Equal(t, 1, f.logs.FilterMessage("falling back to seed unit ceilings").Len())
	})

	t.Run("unknown status blocks enlistment", func(t *testing.T) {
		f := newEnlistmentFixture(t)
		f.students.profile.RegistrationStatus = "GRADUATED"
		view := f.start(t)
		assert.Equal(t, 0, view.Summary.UnitCap)
		assert.Equal(t, float64(-3), view.Summary.RemainingCapacity)
		assert.Equal(t, 1, f.logs.FilterMessage("unknown registration status").Len())

		_, err := f.svc.Add(context.Background(), "2024-0001", selection("CS101", "A"))
		requireAppError(t, err, appErrors.ErrUnitCapExceeded)
	})
}

func TestEnlistmentServiceLogsLockedSubjectMissingFromCatalog(t *testing.T) {
	f := newEnlistmentFixture(t)
	f.store.locked = append(f.store.locked, models.EnlistmentRecord{SubjectCode: "HIST2", Section: "C", Status: models.EnlistmentStatusPending})

	view := f.start(t)
	require.Len(t, view.Locked, 2)
	assert.Equal(t, float64(3), view.Summary.TotalUnits)
	entries := f.logs.FilterMessage("enlisted subject missing from catalog").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "HIST2-C", entries[0].ContextMap()["offering"])
}

func TestEnlistmentServiceStartDiscardsPending(t *testing.T) {
	f := newEnlistmentFixture(t)
	f.start(t)
	_, err := f.svc.Add(context.Background(), "2024-0001", selection("CS101", "A"))
	require.NoError(t, err)

	view := f.start(t)
	assert.Empty(t, view.Pending)
}

func TestEnlistmentServiceRestartKeepsSessionIdentity(t *testing.T) {
	f := newEnlistmentFixture(t)
	f.start(t)
	first, _, ok := f.svc.sessions.Get("2024-0001")
	require.True(t, ok)

	f.start(t)
	second, _, ok := f.svc.sessions.Get("2024-0001")
	require.True(t, ok)
	assert.Same(t, first, second)
}

func TestEnlistmentServiceSnapshot(t *testing.T) {
	f := newEnlistmentFixture(t)
	ctx := context.Background()

	view, err := f.svc.Snapshot(ctx, "2024-0001")
	require.NoError(t, err)
	assert.Len(t, view.Locked, 1)
	assert.True(t, view.ExpiresAt.IsZero())

	f.start(t)
	_, err = f.svc.Add(ctx, "2024-0001", selection("CS101", "A"))
	require.NoError(t, err)
	view, err = f.svc.Snapshot(ctx, "2024-0001")
	require.NoError(t, err)
	assert.Len(t, view.Pending, 1)
}
