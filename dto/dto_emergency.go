package dto

type EmergencyRequest struct {
	EmergencyType string `json:"emergencyType" validate:"required"`
	Location      string `json:"location"`
	FullAddress   string `json:"fullAddress" validate:"required"`
	CurrentDate   string `json:"currentDate"`
	CurrentTime   string `json:"currentTime"`
	Details       string `json:"details"`
	Priority      string `json:"priority"`
}

func (r *EmergencyRequest) Normalize() {
	trim(&r.EmergencyType)
	trim(&r.Location)
	trim(&r.FullAddress)
	trim(&r.CurrentDate)
	trim(&r.CurrentTime)
	trim(&r.Details)
	trim(&r.Priority)
}

type EmergencyUpdateRequest struct {
	Status      *string `json:"status" validate:"omitempty,min=1"`
	Priority    *string `json:"priority" validate:"omitempty,min=1"`
	Details     *string `json:"details"`
	Location    *string `json:"location"`
	FullAddress *string `json:"fullAddress" validate:"omitempty,min=1"`
}

func (r *EmergencyUpdateRequest) Normalize() {
	trimPtr(r.Status)
	trimPtr(r.Priority)
	trimPtr(r.Details)
	trimPtr(r.Location)
	trimPtr(r.FullAddress)
}
