package handler

import (
	"github.com/ageplan/autenticacao/internal/core/ports"
)

// --- Request → Service input ---

func toUserInput(req userRequest) ports.UserInput {
	return ports.UserInput{
		FullName:   req.FullName,
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Roles:      req.Roles,
		Department: req.Department,
		Specialty:  req.Specialty,
	}
}

// --- Service view → HTTP response ---

func toUserResponse(v *ports.UserView) userResponse {
	return userResponse{
		ID:         v.ID,
		FullName:   v.FullName,
		Username:   v.Username,
		Email:      v.Email,
		Roles:      v.Roles,
		Department: v.Department,
		Specialty:  v.Specialty,
		Enabled:    v.Enabled,
	}
}

func toUserPageResponse(p *ports.UserPageView) userPageResponse {
	items := make([]userResponse, len(p.Items))
	for i := range p.Items {
		items[i] = toUserResponse(&p.Items[i])
	}
	return userPageResponse{
		Content:       items,
		TotalElements: p.Total,
		Page:          p.Page,
		Size:          p.Size,
		TotalPages:    p.TotalPages,
	}
}
