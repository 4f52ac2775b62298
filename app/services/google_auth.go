package services

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleProfile is the subset of a verified Google ID token the storefront
// cares about.
type GoogleProfile struct {
	Email    string
	Name     string
	GoogleID string
	Avatar   string
}

type GoogleVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*GoogleProfile, error)
}

type googleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (g *googleVerifier) Verify(ctx context.Context, rawIDToken string) (*GoogleProfile, error) {
	payload, err := idtoken.Validate(ctx, rawIDToken, g.clientID)
	if err != nil {
		return nil, fmt.Errorf("google id token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("google account validation failed: no email claim")
	}
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	return &GoogleProfile{
		Email:    email,
		Name:     name,
		GoogleID: payload.Subject,
		Avatar:   picture,
	}, nil
}
