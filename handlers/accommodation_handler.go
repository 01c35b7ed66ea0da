package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inspection_service/authorization"
	"inspection_service/domain"
	"inspection_service/errors"
	application "inspection_service/service"
)

type AccommodationHandler struct {
	service     *application.SubmissionService
	authService *application.AuthService
	logger      *logrus.Logger
	tracer      trace.Tracer
}

func NewAccommodationHandler(service *application.SubmissionService, authService *application.AuthService, logger *logrus.Logger, tracer trace.Tracer) *AccommodationHandler {
	return &AccommodationHandler{
		service:     service,
		authService: authService,
		logger:      logger,
		tracer:      tracer,
	}
}

func (handler *AccommodationHandler) Init(router *mux.Router) {
	router.HandleFunc("/accommodations", handler.Create).Methods("POST")
	router.HandleFunc("/accommodations/owner/{userID}", handler.GetByOwner).Methods("GET")
	router.HandleFunc("/api/check-submission", handler.CheckSubmission).Methods("GET")
}

// Create runs the wizard submission. The owning user id comes from the
// session marker, never from the payload.
func (handler *AccommodationHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AccommodationHandler.Create")
	defer span.End()

	var userID string
	if claims, err := authorization.ClaimsFromRequest(req); err == nil {
		if session, err := handler.authService.CurrentSession(ctx, claims.SessionID); err == nil {
			userID = session.UserID
		}
	}

	var form domain.SubmissionForm
	if err := form.FromJSON(req.Body); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	accommodationID, err := handler.service.Submit(ctx, userID, &form)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch err.(type) {
		case *application.ValidationError:
			http.Error(writer, err.Error(), http.StatusBadRequest)
		default:
			if err.Error() == errors.NotLoggedIn {
				http.Error(writer, err.Error(), http.StatusUnauthorized)
				return
			}
			http.Error(writer, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	jsonResponse(map[string]string{"accommodationId": accommodationID}, writer)
}

func (handler *AccommodationHandler) GetByOwner(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AccommodationHandler.GetByOwner")
	defer span.End()

	vars := mux.Vars(req)
	userID := vars["userID"]

	accommodations, err := handler.service.GetByOwner(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(accommodations, writer)
}

func (handler *AccommodationHandler) CheckSubmission(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AccommodationHandler.CheckSubmission")
	defer span.End()

	userID := req.URL.Query().Get("userId")
	if userID == "" {
		writer.WriteHeader(http.StatusBadRequest)
		jsonResponse(map[string]string{"error": "userId is required"}, writer)
		return
	}

	exists, err := handler.service.CheckSubmission(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writer.WriteHeader(http.StatusInternalServerError)
		jsonResponse(map[string]string{"error": errors.DatabaseError}, writer)
		return
	}

	jsonResponse(map[string]bool{"exists": exists}, writer)
}
