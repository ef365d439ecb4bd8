package dto

type AddResumeRequest struct {
	Name string `json:"name" validate:"required"`
	Text string `json:"text" validate:"required,min=20"`
}

type ResumeListResponse struct {
	Names []string `json:"names"`
	Count int      `json:"count"`
}

type ResumeResponse struct {
	Name string `json:"name"`
	Text string `json:"text"`
}
