package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspection_service/domain"
	"inspection_service/errors"
)

func TestRedirectRoute(t *testing.T) {
	cases := []struct {
		name         string
		role         domain.Role
		municipality string
		want         string
	}{
		{"admin", domain.RoleAdmin, "", "/admin"},
		{"superadmin", domain.RoleSuperadmin, "", "/superadmin"},
		{"inspector baler", domain.RoleInspector, domain.MunicipalityBaler, "/inspector/baler"},
		{"inspector san luis", domain.RoleInspector, domain.MunicipalitySanLuis, "/inspector/san-luis"},
		{"inspector maria aurora", domain.RoleInspector, domain.MunicipalityMariaAurora, "/inspector/maria-aurora"},
		{"inspector dipaculao", domain.RoleInspector, domain.MunicipalityDipaculao, "/inspector/dipaculao"},
		{"inspector unknown municipality", domain.RoleInspector, "Casiguran", "/login"},
		{"plain user", domain.RoleUser, "", "/submission"},
		{"missing role defaults to user", domain.Role(""), "", "/submission"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RedirectRoute(tc.role, tc.municipality))
		})
	}
}

func newAuthService(users *fakeUserStore, credentials *fakeCredentialsStore, cache *fakeSessionCache) *AuthService {
	return NewAuthService(users, credentials, cache, testTracer())
}

func TestResolveSessionRoutesInspector(t *testing.T) {
	users := newFakeUserStore()
	cache := newFakeSessionCache()
	service := newAuthService(users, newFakeCredentialsStore(), cache)

	_, err := users.Insert(context.Background(), &domain.User{
		AccountID:    "acct-1",
		Name:         "Inspector",
		Email:        "inspector@aurora.gov.ph",
		Role:         domain.RoleInspector,
		Municipality: domain.MunicipalityBaler,
	})
	require.NoError(t, err)

	resolution, err := service.ResolveSession(context.Background(), &domain.Claims{
		SessionID: "session-1",
		AccountID: "acct-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "/inspector/baler", resolution.Route)
	assert.Equal(t, domain.RoleInspector, resolution.Session.Role)

	// The resolver refreshes the server-side marker.
	session, err := cache.GetSession(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, domain.MunicipalityBaler, session.Municipality)
}

func TestResolveSessionDefaultsMissingRole(t *testing.T) {
	users := newFakeUserStore()
	service := newAuthService(users, newFakeCredentialsStore(), newFakeSessionCache())

	_, err := users.Insert(context.Background(), &domain.User{
		AccountID: "acct-2",
		Email:     "owner@testhotel.ph",
	})
	require.NoError(t, err)

	resolution, err := service.ResolveSession(context.Background(), &domain.Claims{
		SessionID: "session-2",
		AccountID: "acct-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "/submission", resolution.Route)
	assert.Equal(t, domain.RoleUser, resolution.Session.Role)
}

func TestResolveSessionUnknownAccount(t *testing.T) {
	service := newAuthService(newFakeUserStore(), newFakeCredentialsStore(), newFakeSessionCache())

	_, err := service.ResolveSession(context.Background(), &domain.Claims{
		SessionID: "session-3",
		AccountID: "ghost",
	})
	require.EqualError(t, err, errors.AccountNotFound)
}

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret-key")

	users := newFakeUserStore()
	credentials := newFakeCredentialsStore()
	cache := newFakeSessionCache()
	service := newAuthService(users, credentials, cache)

	user, err := service.Register(context.Background(), "", &domain.RegisterRequest{
		Name:     "Owner",
		Email:    "owner@testhotel.ph",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)

	token, err := service.Login(context.Background(), &domain.LoginRequest{
		Email:    "owner@testhotel.ph",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Len(t, cache.sessions, 1)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service := newAuthService(newFakeUserStore(), newFakeCredentialsStore(), newFakeSessionCache())

	request := &domain.RegisterRequest{
		Name:     "Owner",
		Email:    "owner@testhotel.ph",
		Password: "correct-horse-battery",
	}
	_, err := service.Register(context.Background(), "", request)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), "", request)
	require.EqualError(t, err, errors.EmailAlreadyExist)
}

func TestRegisterInspectorNeedsKnownMunicipality(t *testing.T) {
	service := newAuthService(newFakeUserStore(), newFakeCredentialsStore(), newFakeSessionCache())

	_, err := service.Register(context.Background(), domain.RoleAdmin, &domain.RegisterRequest{
		Name:         "Inspector",
		Email:        "inspector@aurora.gov.ph",
		Password:     "correct-horse-battery",
		Role:         domain.RoleInspector,
		Municipality: "Dinalungan",
	})
	require.EqualError(t, err, errors.UnknownMunicipality)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	service := newAuthService(newFakeUserStore(), newFakeCredentialsStore(), newFakeSessionCache())

	_, err := service.Register(context.Background(), "", &domain.RegisterRequest{
		Name:     "Owner",
		Email:    "owner@testhotel.ph",
		Password: "correct-horse-battery",
		Role:     domain.Role("owner"),
	})
	require.EqualError(t, err, errors.InvalidRole)
}

// A caller without an admin session cannot grant themselves an elevated role.
func TestRegisterElevatedRoleNeedsAdminCaller(t *testing.T) {
	service := newAuthService(newFakeUserStore(), newFakeCredentialsStore(), newFakeSessionCache())

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleInspector, domain.RoleSuperadmin} {
		_, err := service.Register(context.Background(), "", &domain.RegisterRequest{
			Name:         "Intruder",
			Email:        "intruder@testhotel.ph",
			Password:     "correct-horse-battery",
			Role:         role,
			Municipality: domain.MunicipalityBaler,
		})
		require.EqualError(t, err, errors.ElevatedRoleNotAllowed, string(role))
	}

	user, err := service.Register(context.Background(), domain.RoleSuperadmin, &domain.RegisterRequest{
		Name:     "Provincial Admin",
		Email:    "admin@aurora.gov.ph",
		Password: "correct-horse-battery",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	service := newAuthService(newFakeUserStore(), newFakeCredentialsStore(), newFakeSessionCache())

	_, err := service.Register(context.Background(), "", &domain.RegisterRequest{
		Name:     "Owner",
		Email:    "owner@testhotel.ph",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &domain.LoginRequest{
		Email:    "owner@testhotel.ph",
		Password: "wrong",
	})
	require.EqualError(t, err, errors.InvalidCredentials)
}
