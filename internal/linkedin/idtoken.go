package linkedin

import (
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/Sof1ane/aipply/internal/profile"
)

// backfillFromIDToken fills identity fields from the OpenID id_token when the
// REST endpoints left them unset. The token arrived over TLS straight from
// the provider's token endpoint, so the claims are read without signature
// verification; they are used for backfill only, never for authentication.
func backfillFromIDToken(prof *profile.Profile, token *oauth2.Token) {
	raw, _ := token.Extra("id_token").(string)
	if raw == "" {
		return
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return
	}

	if prof.FullName == "" {
		if name, _ := claims["name"].(string); name != "" {
			prof.FullName = name
		}
	}
	if prof.Email == "" {
		if email, _ := claims["email"].(string); email != "" {
			prof.Email = email
		}
	}
	if prof.PhotoURL == "" {
		if picture, _ := claims["picture"].(string); picture != "" {
			prof.PhotoURL = picture
		}
	}
}
