package handler

// statusMessage is the error envelope for validation and not-found failures
// raised inside a handler. Router-level and storage-level errors use the
// richer envelope rendered by the central error handler instead.
type statusMessage struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// --- Request / Response types ---

type userRequest struct {
	FullName   string   `json:"full_name"   validate:"required"`
	Username   string   `json:"username"    validate:"required,min=3"`
	Email      string   `json:"email"       validate:"required,email"`
	Password   string   `json:"password,omitempty"`
	Roles      []string `json:"roles"`
	Department string   `json:"department,omitempty"`
	Specialty  string   `json:"specialty,omitempty"`
}

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type userResponse struct {
	ID         int64    `json:"id"`
	FullName   string   `json:"full_name"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	Roles      []string `json:"roles"`
	Department string   `json:"department,omitempty"`
	Specialty  string   `json:"specialty,omitempty"`
	Enabled    bool     `json:"enabled"`
}

type userPageResponse struct {
	Content       []userResponse `json:"content"`
	TotalElements int64          `json:"total_elements"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalPages    int            `json:"total_pages"`
}

type roleRequest struct {
	Name string `json:"name" validate:"required,oneof=ADMIN INSTRUTOR ALUNO"`
}

type roleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
