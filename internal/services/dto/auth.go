package dto

// LoginRequest carries the WeChat open-id resolved by the mini-program.
// The code-for-openid exchange with WeChat happens outside this service.
type LoginRequest struct {
	OpenID    string `json:"openId" validate:"required,min=8,max=64"`
	Nickname  string `json:"nickname" validate:"omitempty,max=50"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}
