package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"inspection_service/authorization"
	"inspection_service/domain"
	"inspection_service/errors"
	application "inspection_service/service"
)

type AuthHandler struct {
	service *application.AuthService
	logger  *logrus.Logger
	tracer  trace.Tracer
}

func NewAuthHandler(service *application.AuthService, logger *logrus.Logger, tracer trace.Tracer) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func (handler *AuthHandler) Init(router *mux.Router) {
	router.HandleFunc("/auth/register", handler.Register).Methods("POST")
	router.HandleFunc("/auth/login", handler.Login).Methods("POST")
	router.HandleFunc("/auth/session", handler.ResolveSession).Methods("GET")
	router.HandleFunc("/auth/session", handler.Logout).Methods("DELETE")
}

func (handler *AuthHandler) Register(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Register")
	defer span.End()

	var request domain.RegisterRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		log.Println(err)
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	var callerRole domain.Role
	if claims, err := authorization.ClaimsFromRequest(req); err == nil {
		callerRole = claims.Role
	}

	saved, err := handler.service.Register(ctx, callerRole, &request)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch err.Error() {
		case errors.EmailAlreadyExist:
			http.Error(writer, err.Error(), http.StatusConflict)
		case errors.ElevatedRoleNotAllowed:
			http.Error(writer, err.Error(), http.StatusForbidden)
		case errors.DatabaseError:
			http.Error(writer, err.Error(), http.StatusInternalServerError)
		default:
			http.Error(writer, err.Error(), http.StatusBadRequest)
		}
		return
	}

	writer.WriteHeader(http.StatusOK)
	jsonResponse(saved, writer)
}

func (handler *AuthHandler) Login(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Login")
	defer span.End()

	var request domain.LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	token, err := handler.service.Login(ctx, &request)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.logger.WithField("email", request.Email).Warn("failed login attempt")
		if err.Error() == errors.InvalidCredentials {
			http.Error(writer, err.Error(), http.StatusUnauthorized)
		} else {
			http.Error(writer, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	jsonResponse(map[string]string{"token": token}, writer)
}

// ResolveSession answers "where should this identity land" and refreshes the
// server-side session marker along the way.
func (handler *AuthHandler) ResolveSession(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.ResolveSession")
	defer span.End()

	claims, err := authorization.ClaimsFromRequest(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.NotLoggedIn, http.StatusUnauthorized)
		return
	}

	resolution, err := handler.service.ResolveSession(ctx, claims)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusForbidden)
		return
	}

	jsonResponse(resolution, writer)
}

func (handler *AuthHandler) Logout(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Logout")
	defer span.End()

	claims, err := authorization.ClaimsFromRequest(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, errors.NotLoggedIn, http.StatusUnauthorized)
		return
	}

	if err := handler.service.Logout(ctx, claims.SessionID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	writer.WriteHeader(http.StatusOK)
}

func ExtractTraceInfoMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
