package dto

type BookingRequest struct {
	Name          string `json:"name" validate:"required"`
	FatherName    string `json:"fname" validate:"required"`
	CNIC          string `json:"cnic" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	WhatsApp      string `json:"whatsapp" validate:"required"`
	Qualification string `json:"qualification" validate:"required"`
	Service       string `json:"service" validate:"required"`
	Address       string `json:"address" validate:"required"`
	Province      string `json:"province" validate:"required"`
	Division      string `json:"division" validate:"required"`
	District      string `json:"district" validate:"required"`
	Tehsil        string `json:"tehsil" validate:"required"`
}

func (r *BookingRequest) Normalize() {
	for _, s := range []*string{
		&r.Name, &r.FatherName, &r.CNIC, &r.Phone, &r.WhatsApp, &r.Qualification,
		&r.Service, &r.Address, &r.Province, &r.Division, &r.District, &r.Tehsil,
	} {
		trim(s)
	}
}

type BookingUpdateRequest struct {
	Status   *string `json:"status"`
	Phone    *string `json:"phone" validate:"omitempty,min=1"`
	WhatsApp *string `json:"whatsapp" validate:"omitempty,min=1"`
	Address  *string `json:"address" validate:"omitempty,min=1"`
}

func (r *BookingUpdateRequest) Normalize() {
	trimPtr(r.Status)
	trimPtr(r.Phone)
	trimPtr(r.WhatsApp)
	trimPtr(r.Address)
}
