package handler

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type commitRequest struct {
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Content       string `json:"content"`
	CommitMessage string `json:"commitMessage"`
	PromptID      string `json:"promptId"`
}

type activateVersionRequest struct {
	VersionID string `json:"versionId" binding:"required"`
	PromptID  string `json:"promptId" binding:"required"`
}

type contentResponse struct {
	Slug    string `json:"slug"`
	Content string `json:"content"`
}

type updateUserRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	IsSuperuser *bool   `json:"isSuperuser"`
}

type listUsersResponse struct {
	Users    interface{} `json:"users"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}
