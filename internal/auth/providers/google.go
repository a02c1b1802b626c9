package providers

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type GoogleProvider struct {
	oauthApp
	userInfoURL string
}

func NewGoogleProvider(config *oauth2.Config) *GoogleProvider {
	return &GoogleProvider{oauthApp: oauthApp{config: config}, userInfoURL: googleUserInfoURL}
}

func (p *GoogleProvider) Name() string {
	return Google
}

func (p *GoogleProvider) GetUserInfo(ctx context.Context, token *oauth2.Token) (*OAuthUser, error) {
	var info googleUser
	if err := p.getJSON(ctx, token, p.userInfoURL, &info); err != nil {
		return nil, fmt.Errorf("google profile: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("google profile has no user id")
	}

	return &OAuthUser{
		ID:            info.ID,
		Email:         info.Email,
		EmailVerified: info.VerifiedEmail,
		Name:          info.Name,
		AvatarURL:     info.Picture,
	}, nil
}
