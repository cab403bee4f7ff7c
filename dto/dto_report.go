package dto

type ReportRequest struct {
	ComplaintType string `json:"complaintType" form:"complaintType" validate:"required"`
	Anonymous     bool   `json:"anonymous" form:"anonymous"`
	Name          string `json:"name" form:"name"`
	Phone         string `json:"phone" form:"phone"`
	Email         string `json:"email" form:"email" validate:"omitempty,strictemail"`
	VictimName    string `json:"victimName" form:"victimName" validate:"required"`
	VictimAge     int    `json:"victimAge" form:"victimAge" validate:"required,gt=0"`
	Address       string `json:"address" form:"address" validate:"required"`
	District      string `json:"district" form:"district" validate:"required"`
	Description   string `json:"description" form:"description" validate:"required"`
}

// Normalize trims fields and drops the reporter's contact details when the
// report is anonymous.
func (r *ReportRequest) Normalize() {
	for _, s := range []*string{
		&r.ComplaintType, &r.Name, &r.Phone, &r.Email,
		&r.VictimName, &r.Address, &r.District, &r.Description,
	} {
		trim(s)
	}
	if r.Anonymous {
		r.Name, r.Phone, r.Email = "", "", ""
	}
}

type ReportUpdateRequest struct {
	Status *string `json:"status" validate:"required"`
}

func (r *ReportUpdateRequest) Normalize() {
	trimPtr(r.Status)
}

// ReportTrackResponse is all the public tracking endpoint discloses.
type ReportTrackResponse struct {
	TrackingID string `json:"trackingId"`
	Status     string `json:"status"`
}
