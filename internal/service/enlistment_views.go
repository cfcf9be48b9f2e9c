package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/student-enlistment-api/internal/dto"
	"github.com/noah-isme/student-enlistment-api/internal/enlistment"
)

func buildSessionView(session *enlistmentSession, expiresAt time.Time) dto.SessionView {
	ledger := session.ledger
	catalog := ledger.Catalog()
	profile := session.profile
	return dto.SessionView{
		Student: dto.StudentInfo{
			StudentID:          profile.StudentID,
			Name:               profile.FullName(),
			CourseID:           profile.CourseID,
			YearLevel:          profile.YearLevel,
			Semester:           profile.Semester,
			SchoolYear:         profile.SchoolYear,
			RegistrationStatus: profile.RegistrationStatus,
		},
		CourseFilter: session.courseFilter,
		Locked:       selectionItems(catalog, ledger.Locked(), true),
		Pending:      selectionItems(catalog, ledger.Pending(), false),
		Summary:      enlistment.Project(ledger.State(), catalog),
		ExpiresAt:    expiresAt,
	}
}

func selectionItems(catalog *enlistment.Catalog, keys []enlistment.Key, locked bool) []dto.SelectionItem {
	items := make([]dto.SelectionItem, 0, len(keys))
	for _, key := range keys {
		item := dto.SelectionItem{Code: key.Code, Section: key.Section, Locked: locked}
		if offering, ok := catalog.Lookup(key); ok {
			item.Title = offering.Title
			item.Units = offering.Units
			item.Schedule = offering.ScheduleText
			item.Instructor = offering.Instructor
			item.Room = offering.Room
		}
		items = append(items, item)
	}
	return items
}

// annotateOfferings filters the catalog and tags each row with its standing
// for the ledger owner.
func annotateOfferings(ledger *enlistment.Ledger, filter dto.OfferingFilter) []dto.OfferingView {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	offerings := ledger.Catalog().Offerings()
	views := make([]dto.OfferingView, 0, len(offerings))
	for _, offering := range offerings {
		selected := ledger.IsLocked(offering.Key) || ledger.IsPending(offering.Key)
		if !selected {
			if search != "" &&
				!strings.Contains(strings.ToLower(offering.Key.Code), search) &&
				!strings.Contains(strings.ToLower(offering.Title), search) {
				continue
			}
			if filter.AvailableOnly && offering.RemainingSeats() <= 0 {
				continue
			}
		}

		view := dto.OfferingView{
			Offering:       offering,
			RemainingSeats: offering.RemainingSeats(),
			Slots:          fmt.Sprintf("%d/%d", offering.SeatsTaken, offering.SeatsTotal),
		}
		switch {
		case ledger.IsLocked(offering.Key):
			view.Status = dto.OfferingStatusLocked
		case ledger.IsPending(offering.Key):
			view.Status = dto.OfferingStatusPending
		default:
			if err := ledger.Check(offering.Key); err != nil {
				reason, _ := enlistment.ReasonOf(err)
				view.Status = string(reason)
				view.Message = err.Error()
			} else {
				view.Status = dto.OfferingStatusAvailable
			}
		}
		views = append(views, view)
	}
	return views
}
