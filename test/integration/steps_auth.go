package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultPassword = "S3cure!pass"

func (s *StepsContext) iRegister(email, password string) error {
	return s.authenticate("/auth/register", email, password)
}

func (s *StepsContext) iLogIn(email, password string) error {
	return s.authenticate("/auth/login", email, password)
}

func (s *StepsContext) iAmSignedInAs(email string) error {
	if err := s.iRegister(email, defaultPassword); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("registration of %s failed with %d: %s", email, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

// authenticate posts credentials and keeps the returned access token.
func (s *StepsContext) authenticate(path, email, password string) error {
	s.authToken = ""
	err := s.doJSON(http.MethodPost, path, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	if s.response.StatusCode == http.StatusOK || s.response.StatusCode == http.StatusCreated {
		var body struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(s.responseBody, &body); err == nil {
			s.authToken = body.AccessToken
		}
	}
	return nil
}

func (s *StepsContext) iShouldReceiveAnAccessToken() error {
	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return fmt.Errorf("failed to parse auth response: %w", err)
	}
	if body.TokenType != "bearer" {
		return fmt.Errorf("expected token_type bearer, got %q", body.TokenType)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(body.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return fmt.Errorf("access token does not verify: %w", err)
	}
	if _, err := strconv.ParseUint(claims.Subject, 10, 64); err != nil {
		return fmt.Errorf("token subject %q is not a user id", claims.Subject)
	}
	return nil
}

// currentSubject returns the user id carried by the current token.
func (s *StepsContext) currentSubject() (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(s.authToken, claims)
	if err != nil {
		return "", fmt.Errorf("no usable token: %w", err)
	}
	return claims.Subject, nil
}

func (s *StepsContext) forge(secret string, issued time.Time) error {
	subject, err := s.currentSubject()
	if err != nil {
		return err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
	})
	s.authToken, err = token.SignedString([]byte(secret))
	return err
}

func (s *StepsContext) iUseATokenSignedWithTheWrongSecret() error {
	return s.forge("not-the-server-secret", time.Now())
}

func (s *StepsContext) iUseAnExpiredToken() error {
	return s.forge(jwtSecret, time.Now().Add(-2*time.Hour))
}

func (s *StepsContext) iSignOut() error {
	s.authToken = ""
	return nil
}
