package providers

import (
	"context"

	"golang.org/x/oauth2"
)

// OAuthUser is the normalized identity returned by an OAuth provider. Login
// becomes the principal username.
type OAuthUser struct {
	Login     string
	Name      string
	AvatarURL string
}

// OAuthProvider is implemented by each configured OAuth backend.
type OAuthProvider interface {
	Name() string
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*OAuthUser, error)
}
