package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// IDTokenInfo is the decoded header and claims of an identity token.
// The decode is unverified and exists for logging and inspection only;
// signature verification is the backend's responsibility.
type IDTokenInfo struct {
	Header map[string]any
	Claims jwt.MapClaims
}

// InspectIDToken decodes a JWT's header and payload without verifying the
// signature. Never use the result to make trust decisions.
func InspectIDToken(raw string) (*IDTokenInfo, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	token, _, err := parser.ParseUnverified(raw, claims)
	if err != nil {
		return nil, fmt.Errorf("failed to decode identity token: %w", err)
	}
	return &IDTokenInfo{Header: token.Header, Claims: claims}, nil
}

// Subject returns the "sub" claim, or "".
func (i *IDTokenInfo) Subject() string {
	sub, _ := i.Claims["sub"].(string)
	return sub
}

// Email returns the "email" claim, or "".
func (i *IDTokenInfo) Email() string {
	email, _ := i.Claims["email"].(string)
	return email
}
