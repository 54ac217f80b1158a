package dto

import "college-qa/internal/models"

type CreateFAQRequest struct {
	Question string   `json:"question" validate:"required"`
	Answer   string   `json:"answer" validate:"required"`
	Keywords []string `json:"keywords" validate:"omitempty,dive,required"`
	Category string   `json:"category" validate:"omitempty,max=64"`
}

type FAQResponse struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
	Category string   `json:"category"`
}

func NewFAQResponse(faq models.FAQEntry) FAQResponse {
	keywords := faq.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return FAQResponse{
		Question: faq.Question,
		Answer:   faq.Answer,
		Keywords: keywords,
		Category: faq.Category,
	}
}
