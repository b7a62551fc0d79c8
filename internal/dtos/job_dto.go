package dtos

type PostJobRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	RequiredSkills []string `json:"required_skills" binding:"required,min=1"`
	Budget         float64  `json:"budget" binding:"gte=0"`

	// Optional fields
	Duration string `json:"duration"`
	Location string `json:"location"`
}

type ApplyRequest struct {
	Proposal string `json:"proposal" binding:"required"`
}

type CompleteJobRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}
