package dto

type UserProfile struct {
	ID        string `json:"id"`
	OpenID    string `json:"openId"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

type UpdateProfileRequest struct {
	Nickname  *string `json:"nickname,omitempty" validate:"omitempty,max=50"`
	AvatarURL *string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
	City      *string `json:"city,omitempty" validate:"omitempty,max=50"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}
