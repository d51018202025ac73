// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package sec

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Service Credential

// ServiceTokenSource mints and refreshes the privileged JWT the gateway
// presents to the data store on every service-to-store call.
//
// # Why self-signed?
//
// The data store trusts any HS256 token signed with the shared secret whose
// role claim is "service_role". Minting locally avoids shipping a long-lived
// static credential in the environment: tokens are short-lived and re-minted
// transparently shortly before expiry.
type ServiceTokenSource struct {
	secret []byte
	issuer string
	ttl    time.Duration
	margin time.Duration

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// ServiceClaims is the payload embedded inside a service token.
type ServiceClaims struct {
	jwt.RegisteredClaims

	// Role marks the token as a privileged service credential.
	Role string `json:"role"`
}

// NewServiceTokenSource creates a [ServiceTokenSource] signing with the
// shared data-store secret.
func NewServiceTokenSource(secret, issuer string, ttl, refreshMargin time.Duration) *ServiceTokenSource {
	return &ServiceTokenSource{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		margin: refreshMargin,
	}
}

// Token returns a currently valid service token, re-minting when the cached
// one has less than the refresh margin remaining.
func (source *ServiceTokenSource) Token() (string, error) {
	source.mu.Lock()
	defer source.mu.Unlock()

	// Reuse the cached token while it has comfortable validity left.
	if source.token != "" && time.Until(source.expiresAt) > source.margin {
		return source.token, nil
	}

	currentTime := time.Now()
	claims := ServiceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    source.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(source.ttl)),
		},
		Role: "service_role",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(source.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign service token: %w", err)
	}

	source.token = signedToken
	source.expiresAt = claims.ExpiresAt.Time

	return signedToken, nil
}
