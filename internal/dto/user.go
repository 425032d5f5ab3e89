package dto

import (
	"time"

	"Vidtube/internal/model"
	"Vidtube/internal/repository"
)

// UserInfo 是在DTO中使用的、简化的用户信息（作者、订阅者、频道）
type UserInfo struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl"`
}

// UserResponse 用户自己的资料，没有password和refreshToken字段
type UserResponse struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl"`
	CoverURL  string    `json:"coverUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ChannelProfileResponse 频道主页
type ChannelProfileResponse struct {
	ID                        uint64    `json:"id"`
	Username                  string    `json:"username"`
	FullName                  string    `json:"fullName"`
	Email                     string    `json:"email"`
	AvatarURL                 string    `json:"avatarUrl"`
	CoverURL                  string    `json:"coverUrl"`
	CreatedAt                 time.Time `json:"createdAt"`
	SubscribersCount          int64     `json:"subscribersCount"`
	ChannelsSubscribedToCount int64     `json:"channelsSubscribedToCount"`
	IsSubscribed              bool      `json:"isSubscribed"`
}

func ToUserInfo(user *model.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
	}
}

// ownerInfo 作者没有被preload时返回nil，json里就是null
func ownerInfo(user *model.User) *UserInfo {
	if user == nil || user.ID == 0 {
		return nil
	}
	info := ToUserInfo(user)
	return &info
}

func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
		CoverURL:  user.CoverURL,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func ToChannelProfileResponse(p *repository.ChannelProfile) ChannelProfileResponse {
	return ChannelProfileResponse{
		ID:                        p.ID,
		Username:                  p.Username,
		FullName:                  p.FullName,
		Email:                     p.Email,
		AvatarURL:                 p.AvatarURL,
		CoverURL:                  p.CoverURL,
		CreatedAt:                 p.CreatedAt,
		SubscribersCount:          p.SubscribersCount,
		ChannelsSubscribedToCount: p.ChannelsSubscribedToCount,
		IsSubscribed:              p.IsSubscribed,
	}
}
