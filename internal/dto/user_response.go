package dto

type UserResponse struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	AuthProvider string `json:"authProvider"`
}

func ToUserResponse(user interface {
	GetUserID() string
	GetEmail() string
	GetName() string
	GetAuthProvider() string
}) UserResponse {
	return UserResponse{
		UserID:       user.GetUserID(),
		Email:        user.GetEmail(),
		Name:         user.GetName(),
		AuthProvider: user.GetAuthProvider(),
	}
}
