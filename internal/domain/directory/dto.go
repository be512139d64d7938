package directory

type PersonResponse struct {
	Type       PersonType `json:"type"`
	TypeLabel  string     `json:"type_label"`
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	Classifier string     `json:"classifier"`
	Status     string     `json:"status"`
}

func NewPersonResponse(p Person) PersonResponse {
	return PersonResponse{
		Type:       p.Type,
		TypeLabel:  p.Type.Label(),
		Code:       p.Code,
		Name:       p.Name,
		Classifier: p.Classifier,
		Status:     p.Status,
	}
}
