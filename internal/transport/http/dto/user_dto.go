package dto

import "github.com/Beabadoobee-Fanclub/backend-api/internal/services/identity"

// UserResponse is the /auth/status payload: the provider profile, passed
// through with its wire field names so the dashboard sees the same shape the
// provider returns.
type UserResponse struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	GlobalName    *string `json:"global_name"`
	Bot           *bool   `json:"bot,omitempty"`
	Avatar        *string `json:"avatar"`
	Verified      bool    `json:"verified"`
	Email         *string `json:"email"`
	Flags         uint64  `json:"flags"`
	Banner        *string `json:"banner"`
	AccentColor   *uint32 `json:"accent_color"`
	PremiumType   uint8   `json:"premium_type"`
	PublicFlags   uint64  `json:"public_flags"`
}

func UserResponseFrom(user identity.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Username:      user.Username,
		Discriminator: user.Discriminator,
		GlobalName:    user.GlobalName,
		Bot:           user.Bot,
		Avatar:        user.Avatar,
		Verified:      user.Verified,
		Email:         user.Email,
		Flags:         user.Flags,
		Banner:        user.Banner,
		AccentColor:   user.AccentColor,
		PremiumType:   user.PremiumType,
		PublicFlags:   user.PublicFlags,
	}
}
