package dto

import (
	"time"

	"talent-admin/internal/domain/company"

	"github.com/google/uuid"
)

type CompanyResponse struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	UserID              *uuid.UUID `json:"userId"`
	TIN                 *string    `json:"tin"`
	PhoneNumber         *string    `json:"phoneNumber"`
	Email               *string    `json:"email"`
	Address             *string    `json:"address"`
	Country             *string    `json:"country"`
	BusinessLicence     *string    `json:"businessLicence"`
	EstablishedDate     *string    `json:"establishedDate"`
	BusinessDescription *string    `json:"businessDescription"`
	Website             *string    `json:"website"`
	IsOwner             *bool      `json:"isOwner"`
	IsVerified          *bool      `json:"isVerified"`
	RequestVerify       bool       `json:"requestVerify"`
	HiringRate          *int       `json:"hiringRate"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

type CompanyTabCountsResponse struct {
	All        int `json:"all"`
	Requesting int `json:"requesting"`
	Others     int `json:"others"`
}

type CompanyListResponse struct {
	Items  []CompanyResponse        `json:"items"`
	Counts CompanyTabCountsResponse `json:"counts"`
}

func NewCompanyResponse(c company.Company) CompanyResponse {
	return CompanyResponse{
		ID:                  c.ID,
		Name:                c.Name,
		UserID:              c.UserID,
		TIN:                 c.TIN,
		PhoneNumber:         c.PhoneNumber,
		Email:               c.Email,
		Address:             c.Address,
		Country:             c.Country,
		BusinessLicence:     c.BusinessLicence,
		EstablishedDate:     c.EstablishedDate,
		BusinessDescription: c.BusinessDescription,
		Website:             c.Website,
		IsOwner:             c.IsOwner,
		IsVerified:          c.IsVerified,
		RequestVerify:       c.RequestVerify,
		HiringRate:          c.HiringRate,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func NewCompanyResponses(items []company.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewCompanyResponse(c))
	}
	return out
}
