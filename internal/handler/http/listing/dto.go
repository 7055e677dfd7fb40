package listing

import (
	"errors"
	"net/http"

	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	listingUC "github.com/Aywac/tawzifak1122/internal/usecase/listing"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type createRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	Description   string `json:"description" validate:"required,max=5000"`
	CategoryID    string `json:"categoryId" validate:"required"`
	Country       string `json:"country" validate:"required,max=100"`
	City          string `json:"city" validate:"required,max=100"`
	WorkType      string `json:"workType" validate:"omitempty,oneof=full_time part_time freelance seasonal"`
	CompanyName   string `json:"companyName" validate:"omitempty,max=200"`
	OwnerName     string `json:"ownerName" validate:"omitempty,max=100"`
	OwnerPhotoURL string `json:"ownerPhotoURL" validate:"omitempty,url"`
}

type updateRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description   *string `json:"description" validate:"omitempty,min=1,max=5000"`
	CategoryID    *string `json:"categoryId" validate:"omitempty,min=1"`
	Country       *string `json:"country" validate:"omitempty,max=100"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	WorkType      *string `json:"workType" validate:"omitempty,oneof=full_time part_time freelance seasonal"`
	CompanyName   *string `json:"companyName" validate:"omitempty,max=200"`
	OwnerName     *string `json:"ownerName" validate:"omitempty,max=100"`
	OwnerPhotoURL *string `json:"ownerPhotoURL"`
}

type idResponse struct {
	ID string `json:"id"`
}

// statusFor maps use-case errors onto HTTP status codes.
func statusFor(err error) int {
	var vErr *entity.ValidationError
	switch {
	case errors.Is(err, listingUC.ErrListingNotFound):
		return http.StatusNotFound
	case errors.Is(err, listingUC.ErrInvalidListingID),
		errors.Is(err, listingUC.ErrInvalidPostType),
		errors.Is(err, pagination.ErrInvalidCursor),
		errors.As(err, &vErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
