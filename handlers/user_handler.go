package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inspection_service/authorization"
	"inspection_service/errors"
	application "inspection_service/service"
)

type UserHandler struct {
	service *application.UserService
	logger  *logrus.Logger
	tracer  trace.Tracer
}

func NewUserHandler(service *application.UserService, logger *logrus.Logger, tracer trace.Tracer) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func (handler *UserHandler) Init(router *mux.Router) {
	router.HandleFunc("/users/profile", handler.Profile).Methods("GET")
	router.HandleFunc("/users/{userID}", handler.UpdateUser).Methods("PATCH")
}

func (handler *UserHandler) Profile(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Profile")
	defer span.End()

	claims, err := authorization.ClaimsFromRequest(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.NotLoggedIn, http.StatusUnauthorized)
		return
	}

	user, err := handler.service.GetByAccountID(ctx, claims.AccountID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.AccountNotFound, http.StatusNotFound)
		return
	}
	jsonResponse(user, writer)
}

func (handler *UserHandler) UpdateUser(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.UpdateUser")
	defer span.End()

	vars := mux.Vars(req)
	userID, err := primitive.ObjectIDFromHex(vars["userID"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "Invalid user ID", http.StatusBadRequest)
		return
	}

	existingUser, err := handler.service.Get(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, "User not found", http.StatusBadRequest)
		return
	}

	var updatePayload map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&updatePayload); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	if email, ok := updatePayload["email"].(string); ok {
		emailRegex := regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
		if !emailRegex.MatchString(email) {
			http.Error(writer, errors.InvalidEmailFormat, http.StatusBadRequest)
			return
		}
		if email != existingUser.Email {
			if _, err := handler.service.DoesEmailExist(ctx, email); err == nil {
				span.SetStatus(codes.Error, "Updated email already exists")
				http.Error(writer, errors.EmailAlreadyExist, http.StatusMethodNotAllowed)
				return
			}
		}
	}

	// Identity and authorization fields never come from a profile patch.
	for key := range updatePayload {
		switch key {
		case "id", "accountId", "role":
			delete(updatePayload, key)
		}
	}

	if err := mapstructure.Decode(updatePayload, &existingUser); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	updatedUser, err := handler.service.Update(ctx, existingUser)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(updatedUser, writer)
}
