package dto

import (
	"time"

	"github.com/spec-kit/auth-gateway/internal/domain"
)

// UserResponse is the public view of a principal.
type UserResponse struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Roles     []domain.Role `json:"roles"`
	Active    bool          `json:"active"`
	CreatedAt time.Time     `json:"created_at"`
}

// UserUpdateRequest payload for profile updates; empty fields keep their value.
type UserUpdateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PageResponse wraps a paginated listing.
type PageResponse struct {
	Content       []UserResponse `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"total_elements"`
	TotalPages    int64          `json:"total_pages"`
}

// NewUserResponse maps a domain user, never exposing the password hash.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Email:     user.Email,
		Roles:     user.Roles,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}

// NewPageResponse assembles a page from a listing result.
func NewPageResponse(users []*domain.User, page, size int, total int64) PageResponse {
	content := make([]UserResponse, 0, len(users))
	for _, user := range users {
		content = append(content, NewUserResponse(user))
	}
	totalPages := int64(0)
	if size > 0 {
		totalPages = (total + int64(size) - 1) / int64(size)
	}
	return PageResponse{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
