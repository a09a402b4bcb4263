package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aliaga/companymap/internal/core/domain"
	"github.com/aliaga/companymap/internal/pkg/metrics"
)

// parseID validates the id route parameter before any storage access.
// The id must parse as a positive integer.
func parseID(c *fiber.Ctx) (int64, *domain.ValidationError) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewFieldError("id", "id must be a positive integer", domain.KindInvalidIdentifier)
	}
	return id, nil
}

// ListCompaniesHandler returns companies with offset/limit pagination.
func ListCompaniesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companies, err := deps.Companies.List(c.Context())
		if err != nil {
			return respondError(c, err)
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		total := len(companies)
		if offset >= total {
			companies = nil
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			companies = companies[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: companies, Pagination: pg})
	}
}

// GetCompanyHandler returns a single company by id.
func GetCompanyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, verr := parseID(c)
		if verr != nil {
			return respondError(c, verr)
		}

		company, err := deps.Companies.Get(c.Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(company)
	}
}

// CreateCompanyHandler validates a create payload and persists the record.
func CreateCompanyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in domain.CreateCompanyInput
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}

		company, err := deps.Companies.Create(c.Context(), in)
		if err != nil {
			if _, isValidation := err.(*domain.ValidationError); isValidation {
				metrics.ValidationFailures.WithLabelValues("create").Inc()
			}
			return respondError(c, err)
		}

		metrics.CompaniesCreated.Inc()
		return c.Status(fiber.StatusCreated).JSON(company)
	}
}

// UpdateCompanyHandler applies a partial update to an existing company.
func UpdateCompanyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, verr := parseID(c)
		if verr != nil {
			return respondError(c, verr)
		}

		var in domain.UpdateCompanyInput
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}

		company, err := deps.Companies.Update(c.Context(), id, in)
		if err != nil {
			if _, isValidation := err.(*domain.ValidationError); isValidation {
				metrics.ValidationFailures.WithLabelValues("update").Inc()
			}
			return respondError(c, err)
		}

		metrics.CompaniesUpdated.Inc()
		return c.JSON(company)
	}
}

// DeleteCompanyHandler removes a company.
func DeleteCompanyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, verr := parseID(c)
		if verr != nil {
			return respondError(c, verr)
		}

		if err := deps.Companies.Delete(c.Context(), id); err != nil {
			return respondError(c, err)
		}

		metrics.CompaniesDeleted.Inc()
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RootHandler returns basic service information.
func RootHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Company Map API",
			"version": apiVersion,
			"docs":    "/docs",
		})
	}
}
