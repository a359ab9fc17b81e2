package leavetype

type CreateLeaveTypeRequest struct {
	Name           string  `json:"name" binding:"required"`
	IsEventBased   bool    `json:"is_event_based"`
	MaxDays        int     `json:"max_days" binding:"required,min=1"`
	RequiredGender *string `json:"required_gender" binding:"omitempty,oneof=male female"`
}

type UpdateLeaveTypeRequest struct {
	Name           string  `json:"name" binding:"required"`
	IsEventBased   bool    `json:"is_event_based"`
	MaxDays        int     `json:"max_days" binding:"required,min=1"`
	RequiredGender *string `json:"required_gender" binding:"omitempty,oneof=male female"`
}

type LeaveTypeResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	IsEventBased   bool    `json:"is_event_based"`
	MaxDays        int     `json:"max_days"`
	RequiredGender *string `json:"required_gender,omitempty"`
}
