package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inspection_service/domain"
	"inspection_service/errors"
)

// StatusService is the one parameterized status workflow behind the four
// municipality dashboards. Which gates apply comes from the municipality's
// policy, not from which dashboard issued the request.
type StatusService struct {
	store  domain.AccommodationStore
	mailer *DecisionMailer
	tracer trace.Tracer
	logger *logrus.Logger
}

func NewStatusService(store domain.AccommodationStore, mailer *DecisionMailer, tracer trace.Tracer, logger *logrus.Logger) *StatusService {
	return &StatusService{
		store:  store,
		mailer: mailer,
		tracer: tracer,
		logger: logger,
	}
}

func (service *StatusService) ListByMunicipality(ctx context.Context, municipality string) (domain.Accommodations, error) {
	ctx, span := service.tracer.Start(ctx, "StatusService.ListByMunicipality")
	defer span.End()

	if _, ok := domain.PolicyFor(municipality); !ok {
		return nil, fmt.Errorf(errors.UnknownMunicipality)
	}
	return service.store.GetByMunicipality(ctx, municipality)
}

// SetAppointment stores an inspection appointment. Where the policy gates
// approval on an appointment, scheduling is allowed while the record is still
// transitionable and leaves the status untouched; everywhere else the record
// must already be approved and the write flips it to ApprovedAttachment.
// Every rejection happens before the store is touched.
func (service *StatusService) SetAppointment(ctx context.Context, accommodationID string, date time.Time) error {
	ctx, span := service.tracer.Start(ctx, "StatusService.SetAppointment")
	defer span.End()

	accommodation, err := service.store.GetByAccommodationID(ctx, accommodationID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf(errors.AccommodationNotFound)
	}

	policy, ok := domain.PolicyFor(accommodation.Municipality)
	if !ok {
		return fmt.Errorf(errors.UnknownMunicipality)
	}

	if accommodation.Status == domain.StatusApprovedAttachment {
		return fmt.Errorf(errors.AppointmentAlreadySet)
	}

	if policy.RequireAppointmentToApprove && policy.CanTransition(accommodation.Status) {
		if accommodation.AppointmentDate != nil {
			return fmt.Errorf(errors.AppointmentAlreadySet)
		}
		if err := service.store.SetAppointment(ctx, accommodationID, date, accommodation.Status); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		return nil
	}

	if accommodation.Status != domain.StatusApproved {
		return fmt.Errorf(errors.AppointmentRequiresApproval)
	}

	if err := service.store.SetAppointment(ctx, accommodationID, date, domain.StatusApprovedAttachment); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	service.notify(accommodation, domain.StatusApprovedAttachment, "")
	return nil
}

// ChangeStatus approves or declines a form under the municipality's policy.
func (service *StatusService) ChangeStatus(ctx context.Context, accommodationID, newStatus, declineReason string) error {
	ctx, span := service.tracer.Start(ctx, "StatusService.ChangeStatus")
	defer span.End()

	if newStatus != domain.StatusApproved && newStatus != domain.StatusDeclined {
		return fmt.Errorf(errors.InvalidStatus)
	}

	accommodation, err := service.store.GetByAccommodationID(ctx, accommodationID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf(errors.AccommodationNotFound)
	}

	policy, ok := domain.PolicyFor(accommodation.Municipality)
	if !ok {
		return fmt.Errorf(errors.UnknownMunicipality)
	}

	if !policy.CanTransition(accommodation.Status) {
		declineOfApproved := newStatus == domain.StatusDeclined &&
			accommodation.Status == domain.StatusApproved &&
			policy.AllowDeclineAfterApproval
		if !declineOfApproved {
			return fmt.Errorf(errors.StatusLocked)
		}
	}

	if newStatus == domain.StatusDeclined {
		if policy.RequireDeclineReason && declineReason == "" {
			return fmt.Errorf(errors.DeclineReasonRequired)
		}
	} else {
		declineReason = ""
		if policy.RequireAppointmentToApprove && accommodation.AppointmentDate == nil {
			return fmt.Errorf(errors.AppointmentNotSet)
		}
	}

	if err := service.store.UpdateStatus(ctx, accommodationID, newStatus, declineReason); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	service.logger.WithFields(logrus.Fields{
		"accommodationId": accommodationID,
		"municipality":    accommodation.Municipality,
		"status":          newStatus,
	}).Info("accommodation status changed")

	service.notify(accommodation, newStatus, declineReason)
	return nil
}

// notify is best effort; a mail failure never fails the mutation.
func (service *StatusService) notify(accommodation *domain.Accommodation, status, reason string) {
	if service.mailer == nil || accommodation.Email == "" {
		return
	}
	if err := service.mailer.SendDecisionMail(accommodation.Email, accommodation.EstablishmentName, status, reason); err != nil {
		service.logger.WithField("accommodationId", accommodation.AccommodationID).
			Warnf("decision mail not sent: %s", err)
	}
}
