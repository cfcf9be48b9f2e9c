package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/student-enlistment-api/internal/dto"
	appErrors "github.com/noah-isme/student-enlistment-api/pkg/errors"
	"github.com/noah-isme/student-enlistment-api/pkg/export"
	"github.com/noah-isme/student-enlistment-api/pkg/storage"
)

type selectionSnapshotter interface {
	Snapshot(ctx context.Context, studentID string) (*dto.SessionView, error)
}

type documentRenderer interface {
	Render(doc export.Document) ([]byte, error)
}

// FormConfig tunes registration form links.
type FormConfig struct {
	APIPrefix string
}

// RegistrationFormService renders the student's selection as a printable
// registration form and issues signed download links for it.
type RegistrationFormService struct {
	sessions  selectionSnapshotter
	signer    *storage.SignedURLSigner
	csv       documentRenderer
	pdf       documentRenderer
	validator *validator.Validate
	logger    *zap.Logger
	cfg       FormConfig
	now       func() time.Time
}

// NewRegistrationFormService constructs a RegistrationFormService.
func NewRegistrationFormService(sessions selectionSnapshotter, signer *storage.SignedURLSigner, cfg FormConfig, logger *zap.Logger, csv, pdf documentRenderer) *RegistrationFormService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &RegistrationFormService{
		sessions:  sessions,
		signer:    signer,
		csv:       csv,
		pdf:       pdf,
		validator: validator.New(),
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Link issues a signed, expiring download link for the student's form.
func (s *RegistrationFormService) Link(ctx context.Context, studentID string, req dto.FormLinkRequest) (*dto.FormLink, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid form format")
	}
	format := formFormat(req.Format)
	token, expiresAt, err := s.signer.Generate(studentID, format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign form link")
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return &dto.FormLink{
		URL:       fmt.Sprintf("%s/forms/%s", prefix, token),
		Format:    format,
		ExpiresAt: expiresAt,
	}, nil
}

// RenderToken validates a download token and renders the form it names.
func (s *RegistrationFormService) RenderToken(ctx context.Context, token string) (*dto.RenderedForm, error) {
	studentID, format, _, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrLinkExpired, "registration form link expired")
		}
		s.logger.Warn("rejected form token", zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid registration form link")
	}
	return s.Render(ctx, studentID, format)
}

// Render builds the registration form in the requested format.
func (s *RegistrationFormService) Render(ctx context.Context, studentID, format string) (*dto.RenderedForm, error) {
	format = formFormat(format)
	view, err := s.sessions.Snapshot(ctx, studentID)
	if err != nil {
		return nil, err
	}
	generatedAt := s.now()
	doc := registrationDocument(view, generatedAt)

	var (
		payload     []byte
		contentType string
	)
	switch format {
	case dto.FormFormatCSV:
		payload, err = s.csv.Render(doc)
		contentType = "text/csv"
	case dto.FormFormatPDF:
		payload, err = s.pdf.Render(doc)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported form format "+format)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render registration form")
	}
	return &dto.RenderedForm{
		Filename:    fmt.Sprintf("registration_%s_%s.%s", sanitizeFilename(studentID), generatedAt.UTC().Format("20060102_150405"), format),
		ContentType: contentType,
		Content:     payload,
	}, nil
}

func formFormat(raw string) string {
	format := strings.ToLower(strings.TrimSpace(raw))
	if format == "" {
		return dto.FormFormatPDF
	}
	return format
}

var registrationHeaders = []string{"Code", "Section", "Title", "Units", "Schedule", "Instructor", "Room", "Status"}

func registrationDocument(view *dto.SessionView, generatedAt time.Time) export.Document {
	rows := make([]map[string]string, 0, len(view.Locked)+len(view.Pending))
	appendRows := func(items []dto.SelectionItem, status string) {
		for _, item := range items {
			rows = append(rows, map[string]string{
				"Code":       item.Code,
				"Section":    item.Section,
				"Title":      item.Title,
				"Units":      formatUnits(item.Units),
				"Schedule":   item.Schedule,
				"Instructor": item.Instructor,
				"Room":       item.Room,
				"Status":     status,
			})
		}
	}
	appendRows(view.Locked, "Enlisted")
	appendRows(view.Pending, "Selected")

	student := view.Student
	summary := view.Summary
	return export.Document{
		Title: "Registration Form",
		Heading: []string{
			fmt.Sprintf("Student: %s (%s)", student.Name, student.StudentID),
			fmt.Sprintf("Course: %s  Year level: %d", student.CourseID, student.YearLevel),
			fmt.Sprintf("Semester %d, S.Y. %s  Status: %s", student.Semester, student.SchoolYear, student.RegistrationStatus),
		},
		Data: export.Dataset{Headers: registrationHeaders, Rows: rows},
		Footer: []string{
			fmt.Sprintf("Total units: %s of %d", formatUnits(summary.TotalUnits), summary.UnitCap),
			fmt.Sprintf("Subjects: %d", summary.TotalSubjects),
			"Generated: " + generatedAt.Format("2006-01-02 15:04"),
		},
		Widths: map[string]float64{
			"Code":    24,
			"Section": 18,
			"Units":   14,
			"Room":    22,
			"Status":  22,
		},
	}
}

func formatUnits(units float64) string {
	return strconv.FormatFloat(units, 'f', -1, 64)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := replacer.Replace(raw)
	if len(result) > 64 {
		return result[:64]
	}
	return result
}
