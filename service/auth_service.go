package application

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cristalhq/jwt/v4"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"inspection_service/domain"
	"inspection_service/errors"
)

type AuthService struct {
	users       domain.UserStore
	credentials domain.CredentialsStore
	cache       domain.SessionCache
	tracer      trace.Tracer
}

func NewAuthService(users domain.UserStore, credentials domain.CredentialsStore, cache domain.SessionCache, tracer trace.Tracer) *AuthService {
	return &AuthService{
		users:       users,
		credentials: credentials,
		cache:       cache,
		tracer:      tracer,
	}
}

// Register creates credentials and a user record. Anyone may self-register
// as a plain user; elevated roles are only assignable when the caller already
// holds an admin or superadmin session.
func (service *AuthService) Register(ctx context.Context, callerRole domain.Role, request *domain.RegisterRequest) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		return nil, err
	}

	switch request.Role {
	case "", domain.RoleUser:
		request.Role = domain.RoleUser
	case domain.RoleAdmin, domain.RoleInspector, domain.RoleSuperadmin:
		if callerRole != domain.RoleAdmin && callerRole != domain.RoleSuperadmin {
			return nil, fmt.Errorf(errors.ElevatedRoleNotAllowed)
		}
	default:
		return nil, fmt.Errorf(errors.InvalidRole)
	}
	if request.Role == domain.RoleInspector {
		if _, ok := domain.PolicyFor(request.Municipality); !ok {
			return nil, fmt.Errorf(errors.UnknownMunicipality)
		}
	}

	if _, err := service.credentials.GetByEmail(ctx, request.Email); err == nil {
		return nil, fmt.Errorf(errors.EmailAlreadyExist)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	credentials, err := service.credentials.Insert(ctx, &domain.Credentials{
		Email:    request.Email,
		Password: string(hash),
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf(errors.DatabaseError)
	}

	user := &domain.User{
		AccountID:    credentials.ID.Hex(),
		Name:         request.Name,
		Email:        request.Email,
		Role:         request.Role,
		Municipality: request.Municipality,
	}
	saved, err := service.users.Insert(ctx, user)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf(errors.DatabaseError)
	}
	return saved, nil
}

func (service *AuthService) Login(ctx context.Context, request *domain.LoginRequest) (string, error) {
	ctx, span := service.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	credentials, err := service.credentials.GetByEmail(ctx, request.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", fmt.Errorf(errors.InvalidCredentials)
		}
		return "", fmt.Errorf("Error retrieving credentials: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credentials.Password), []byte(request.Password)); err != nil {
		return "", fmt.Errorf(errors.InvalidCredentials)
	}

	user, err := service.users.GetByAccountID(ctx, credentials.ID.Hex())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf(errors.AccountNotFound)
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	sessionID := uuid.New().String()
	token, err := GenerateJWT(sessionID, user)
	if err != nil {
		return "", err
	}

	err = service.cache.PostSession(ctx, sessionID, &domain.Session{
		UserID:       user.ID.Hex(),
		Email:        user.Email,
		Role:         user.Role,
		Municipality: user.Municipality,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return token, nil
}

// ResolveSession loads the user record behind the authenticated identity,
// defaults a missing role to "user", picks the dashboard route and refreshes
// the cached snapshot. The snapshot is never trusted as origin-of-truth.
func (service *AuthService) ResolveSession(ctx context.Context, claims *domain.Claims) (*domain.SessionResolution, error) {
	ctx, span := service.tracer.Start(ctx, "AuthService.ResolveSession")
	defer span.End()

	user, err := service.users.GetByAccountID(ctx, claims.AccountID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf(errors.AccountNotFound)
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	session := &domain.Session{
		UserID:       user.ID.Hex(),
		Email:        user.Email,
		Role:         user.Role,
		Municipality: user.Municipality,
	}
	if err := service.cache.PostSession(ctx, claims.SessionID, session); err != nil {
		log.Printf("failed to refresh session snapshot: %s", err)
	}

	return &domain.SessionResolution{
		Route:   RedirectRoute(user.Role, user.Municipality),
		Session: session,
	}, nil
}

// CurrentSession returns the cached snapshot for a session id. A cache miss
// means the session marker is gone and the caller must treat the user as
// logged out.
func (service *AuthService) CurrentSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	ctx, span := service.tracer.Start(ctx, "AuthService.CurrentSession")
	defer span.End()

	session, err := service.cache.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf(errors.NotLoggedIn)
	}
	return session, nil
}

func (service *AuthService) Logout(ctx context.Context, sessionID string) error {
	ctx, span := service.tracer.Start(ctx, "AuthService.Logout")
	defer span.End()

	return service.cache.DelSession(ctx, sessionID)
}

// RedirectRoute maps a role (and, for inspectors, a municipality) to the
// dashboard route the client should land on. Unrecognized municipalities
// fall back to the login page.
func RedirectRoute(role domain.Role, municipality string) string {
	switch role {
	case domain.RoleAdmin:
		return "/admin"
	case domain.RoleSuperadmin:
		return "/superadmin"
	case domain.RoleInspector:
		switch municipality {
		case domain.MunicipalityBaler:
			return "/inspector/baler"
		case domain.MunicipalitySanLuis:
			return "/inspector/san-luis"
		case domain.MunicipalityMariaAurora:
			return "/inspector/maria-aurora"
		case domain.MunicipalityDipaculao:
			return "/inspector/dipaculao"
		default:
			return "/login"
		}
	default:
		return "/submission"
	}
}

func GenerateJWT(sessionID string, user *domain.User) (string, error) {
	key := []byte(os.Getenv("SECRET_KEY"))
	signer, err := jwt.NewSignerHS(jwt.HS256, key)
	if err != nil {
		log.Println(err)
		return "", fmt.Errorf(errors.ErrorToken)
	}

	builder := jwt.NewBuilder(signer)

	claims := &domain.Claims{
		SessionID:    sessionID,
		AccountID:    user.AccountID,
		Email:        user.Email,
		Role:         user.Role,
		Municipality: user.Municipality,
		ExpiresAt:    time.Now().Add(time.Minute * 60),
	}

	token, err := builder.Build(claims)
	if err != nil {
		log.Println(err)
		return "", fmt.Errorf(errors.ErrorToken)
	}

	return token.String(), nil
}
