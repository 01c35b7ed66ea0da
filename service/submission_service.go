package application

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inspection_service/domain"
	"inspection_service/errors"
)

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRegex = regexp.MustCompile(`^[0-9+\-\s]{7,15}$`)
)

type SubmissionService struct {
	store  domain.AccommodationStore
	tracer trace.Tracer
	logger *logrus.Logger
}

func NewSubmissionService(store domain.AccommodationStore, tracer trace.Tracer, logger *logrus.Logger) *SubmissionService {
	return &SubmissionService{
		store:  store,
		tracer: tracer,
		logger: logger,
	}
}

// Submit runs the six-write submission sequence: basic info first, then the
// sibling records, all keyed by one fresh correlation id. The writes are
// serial and independent; a failure after the first one leaves the basic-info
// record without siblings, and the returned error names the record that
// failed so the gap is at least visible.
func (service *SubmissionService) Submit(ctx context.Context, userID string, form *domain.SubmissionForm) (string, error) {
	ctx, span := service.tracer.Start(ctx, "SubmissionService.Submit")
	defer span.End()

	if userID == "" {
		return "", fmt.Errorf(errors.NotLoggedIn)
	}

	if err := validateBasicInfo(&form.BasicInfo); err != nil {
		return "", err
	}

	accommodationID := uuid.New().String()

	basicInfo := form.BasicInfo
	basicInfo.AccommodationID = accommodationID
	basicInfo.Website = normalizeWebsite(basicInfo.Website)
	// Status is forced regardless of whatever the client sent.
	basicInfo.Status = domain.StatusPending
	basicInfo.DeclineReason = ""
	basicInfo.AppointmentDate = nil
	basicInfo.UserID = userID
	basicInfo.CreatedAt = time.Now()

	if _, err := service.store.InsertBasicInfo(ctx, &basicInfo); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("failed to save basic info: %v", err)
	}

	base := domain.RecordBase{
		AccommodationID: accommodationID,
		Municipality:    basicInfo.Municipality,
		UserID:          userID,
	}

	if err := service.store.InsertFacilities(ctx, form.Facilities.Flatten(base)); err != nil {
		return "", service.siblingFailure(span, accommodationID, "facilities", err)
	}

	if !form.Rooms.Empty() {
		if err := service.store.InsertRooms(ctx, form.Rooms.Flatten(base)); err != nil {
			return "", service.siblingFailure(span, accommodationID, "rooms", err)
		}
	}

	if !form.Cottages.Empty() {
		if err := service.store.InsertCottages(ctx, form.Cottages.Flatten(base)); err != nil {
			return "", service.siblingFailure(span, accommodationID, "cottages", err)
		}
	}

	if err := service.store.InsertServices(ctx, form.Services.Flatten(base)); err != nil {
		return "", service.siblingFailure(span, accommodationID, "services", err)
	}

	if err := service.store.InsertEmployees(ctx, form.Employees.Flatten(base)); err != nil {
		return "", service.siblingFailure(span, accommodationID, "employees", err)
	}

	service.logger.WithFields(logrus.Fields{
		"accommodationId": accommodationID,
		"municipality":    basicInfo.Municipality,
	}).Info("accommodation submission persisted")

	return accommodationID, nil
}

// siblingFailure records a partial submission: the basic-info record exists
// but the named sibling write failed. No compensating delete is attempted.
func (service *SubmissionService) siblingFailure(span trace.Span, accommodationID, record string, err error) error {
	span.SetStatus(codes.Error, err.Error())
	service.logger.WithFields(logrus.Fields{
		"accommodationId": accommodationID,
		"record":          record,
	}).Error("sibling record write failed, submission left incomplete")
	return fmt.Errorf("failed to save %s record: %v", record, err)
}

func (service *SubmissionService) CheckSubmission(ctx context.Context, userID string) (bool, error) {
	ctx, span := service.tracer.Start(ctx, "SubmissionService.CheckSubmission")
	defer span.End()

	return service.store.ExistsByUser(ctx, userID)
}

func (service *SubmissionService) GetByOwner(ctx context.Context, userID string) (domain.Accommodations, error) {
	ctx, span := service.tracer.Start(ctx, "SubmissionService.GetByOwner")
	defer span.End()

	return service.store.GetByOwner(ctx, userID)
}

type ValidationError struct {
	Message string `json:"message"`
}

func (v *ValidationError) Error() string {
	return v.Message
}

func validateBasicInfo(info *domain.Accommodation) error {
	if info.EstablishmentName == "" {
		return &ValidationError{Message: "Establishment name cannot be empty"}
	}
	if _, ok := domain.PolicyFor(info.Municipality); !ok {
		return &ValidationError{Message: errors.UnknownMunicipality}
	}
	// The field-level validator already ran on the client; re-check anyway.
	if info.Email == "" || !emailRegex.MatchString(info.Email) {
		return &ValidationError{Message: errors.InvalidEmailFormat}
	}
	if info.ContactNumber != "" && !phoneRegex.MatchString(info.ContactNumber) {
		return &ValidationError{Message: errors.InvalidPhoneFormat}
	}
	return nil
}

// normalizeWebsite guarantees a URL scheme prefix on the free-text website
// field. Empty stays empty.
func normalizeWebsite(website string) string {
	if website == "" {
		return ""
	}
	if strings.HasPrefix(website, "http://") || strings.HasPrefix(website, "https://") {
		return website
	}
	return "https://" + website
}
