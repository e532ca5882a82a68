package dto

type CreateLiveSessionRequest struct {
	Title        string  `json:"title" validate:"max=200"`
	Status       *string `json:"status" validate:"omitempty,oneof=live scheduled ended hidden"`
	Slug         *string `json:"slug" validate:"omitempty,max=200"`
	Link         *string `json:"link"`
	Token        *string `json:"token"`
	Participants *int    `json:"participants" validate:"omitempty,min=0"`
	Duration     *int    `json:"duration" validate:"omitempty,min=0"`
}

type EndLiveSessionRequest struct {
	Status       *string `json:"status" validate:"omitempty,oneof=live scheduled ended hidden"`
	Link         *string `json:"link"`
	Duration     *int    `json:"duration" validate:"omitempty,min=0"`
	Participants *int    `json:"participants" validate:"omitempty,min=0"`
}
