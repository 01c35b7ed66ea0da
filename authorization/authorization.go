package authorization

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cristalhq/jwt/v4"

	"inspection_service/domain"
	localErrors "inspection_service/errors"
)

var jwtKey = []byte(os.Getenv("SECRET_KEY"))

var verifier, _ = jwt.NewVerifierHS(jwt.HS256, jwtKey)

func GetToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse([]byte(tokenString), verifier)
	if err != nil {
		log.Println(err)
		return nil, err
	}
	return token, nil
}

func GetMapClaims(tokenBytes []byte) map[string]string {
	var claims map[string]string

	err := jwt.ParseClaims(tokenBytes, verifier, &claims)
	if err != nil {
		log.Println(err)
	}

	return claims
}

func ExtractBearerToken(authHeader string) string {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// ClaimsFromRequest parses and verifies the bearer token of a request and
// rejects expired sessions.
func ClaimsFromRequest(r *http.Request) (*domain.Claims, error) {
	tokenString := ExtractBearerToken(r.Header.Get("Authorization"))
	if tokenString == "" {
		return nil, errors.New(localErrors.NotLoggedIn)
	}

	token, err := GetToken(tokenString)
	if err != nil {
		return nil, err
	}

	var claims domain.Claims
	if err := jwt.ParseClaims(token.Bytes(), verifier, &claims); err != nil {
		return nil, err
	}

	if claims.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("session expired")
	}

	return &claims, nil
}
