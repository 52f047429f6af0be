package dto

type CategoryDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Version int64  `json:"version"`
}

type CreateCategoryDTO struct {
	Name string `json:"name" validate:"required,min=3,max=20"`
}

type UpdateCategoryDTO struct {
	ID      int64 `json:"id"`
	Version int64 `json:"version" validate:"gte=0"`
	CreateCategoryDTO
}
