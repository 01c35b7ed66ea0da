package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inspection_service/authorization"
	"inspection_service/domain"
	"inspection_service/errors"
	application "inspection_service/service"
)

type StatusHandler struct {
	service *application.StatusService
	logger  *logrus.Logger
	tracer  trace.Tracer
}

func NewStatusHandler(service *application.StatusService, logger *logrus.Logger, tracer trace.Tracer) *StatusHandler {
	return &StatusHandler{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func (handler *StatusHandler) Init(router *mux.Router) {
	router.HandleFunc("/accommodations", handler.List).Methods("GET")
	router.HandleFunc("/accommodations/{id}/appointment", handler.SetAppointment).Methods("POST")
	router.HandleFunc("/accommodations/{id}/status", handler.ChangeStatus).Methods("POST")
}

func (handler *StatusHandler) List(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "StatusHandler.List")
	defer span.End()

	municipality := req.URL.Query().Get("municipality")
	if municipality == "" {
		http.Error(writer, "municipality is required", http.StatusBadRequest)
		return
	}

	// An inspector only sees the dashboard of their own municipality.
	if claims, err := authorization.ClaimsFromRequest(req); err == nil {
		if claims.Role == domain.RoleInspector && claims.Municipality != municipality {
			http.Error(writer, "forbidden", http.StatusForbidden)
			return
		}
	}

	accommodations, err := handler.service.ListByMunicipality(ctx, municipality)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if err.Error() == errors.UnknownMunicipality {
			http.Error(writer, err.Error(), http.StatusBadRequest)
			return
		}
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(accommodations, writer)
}

type appointmentRequest struct {
	AppointmentDate time.Time `json:"appointmentDate"`
}

func (handler *StatusHandler) SetAppointment(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "StatusHandler.SetAppointment")
	defer span.End()

	vars := mux.Vars(req)
	accommodationID := vars["id"]

	var request appointmentRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	if err := handler.service.SetAppointment(ctx, accommodationID, request.AppointmentDate); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), statusCodeFor(err))
		return
	}

	writer.WriteHeader(http.StatusOK)
}

type statusChangeRequest struct {
	Status        string `json:"status"`
	DeclineReason string `json:"declineReason,omitempty"`
}

func (handler *StatusHandler) ChangeStatus(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "StatusHandler.ChangeStatus")
	defer span.End()

	vars := mux.Vars(req)
	accommodationID := vars["id"]

	var request statusChangeRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	if err := handler.service.ChangeStatus(ctx, accommodationID, request.Status, request.DeclineReason); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), statusCodeFor(err))
		return
	}

	writer.WriteHeader(http.StatusOK)
}

func statusCodeFor(err error) int {
	switch err.Error() {
	case errors.AccommodationNotFound:
		return http.StatusNotFound
	case errors.StatusLocked, errors.AppointmentAlreadySet:
		return http.StatusConflict
	case errors.DeclineReasonRequired, errors.AppointmentRequiresApproval,
		errors.AppointmentNotSet, errors.InvalidStatus, errors.UnknownMunicipality:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
