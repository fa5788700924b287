package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sajhahub/sajha-hub-backend/internal/currency"
	"github.com/sajhahub/sajha-hub-backend/internal/domain"
	"github.com/sajhahub/sajha-hub-backend/internal/service"
	"github.com/sajhahub/sajha-hub-backend/internal/util"
)

const maxListingImageBytes = 8 << 20

type ListingHandler struct {
	listings *service.ListingService
}

type ListingResponse struct {
	domain.Listing
	DisplayPrice string `json:"display_price"`
}

type ListingListResponse struct {
	Listings []ListingResponse `json:"listings"`
	Total    int               `json:"total"`
	City     string            `json:"city"`
}

type feedbackRequest struct {
	Type string `json:"type"`
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

func RegisterListings(e *echo.Echo, auth *service.AuthService, listings *service.ListingService) {
	handler := &ListingHandler{listings: listings}

	public := e.Group("/api/v1/listings")
	public.GET("", handler.browse)
	public.GET("/:id", handler.get)

	protected := e.Group("/api/v1/listings", RequireAuth(auth))
	protected.POST("", handler.create)
	protected.POST("/:id/feedback", handler.vote)
	protected.PUT("/:id/availability", handler.setAvailability)
}

// browse handles GET /api/v1/listings
func (h *ListingHandler) browse(c echo.Context) error {
	filter := domain.ListingFilter{
		Region:      c.QueryParam("region"),
		Category:    c.QueryParam("category"),
		SubCategory: c.QueryParam("sub_category"),
		City:        c.QueryParam("city"),
		Query:       c.QueryParam("q"),
		RentalType:  c.QueryParam("rental_type"),
	}
	if raw := strings.TrimSpace(c.QueryParam("max_price")); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("max_price must be a number"))
		}
		filter.MaxPrice = maxPrice
	}
	if raw := strings.TrimSpace(c.QueryParam("verified")); raw != "" {
		verified, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("verified must be a boolean"))
		}
		filter.VerifiedOnly = verified
	}

	results, err := h.listings.Browse(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to browse listings"))
	}

	displayCity := displayCityFor(c, filter.City)
	listings := make([]ListingResponse, 0, len(results))
	for _, l := range results {
		listings = append(listings, toListingResponse(l, displayCity))
	}
	return c.JSON(http.StatusOK, ListingListResponse{
		Listings: listings,
		Total:    len(listings),
		City:     displayCity,
	})
}

// get handles GET /api/v1/listings/{id}
func (h *ListingHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid listing id"))
	}
	listing, err := h.listings.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, util.Error("listing not found"))
	}
	resp := toListingResponse(*listing, displayCityFor(c, ""))
	return c.JSON(http.StatusOK, util.Data("listing", resp))
}

// create handles POST /api/v1/listings
func (h *ListingHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	if err := c.Request().ParseMultipartForm(maxListingImageBytes); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid multipart payload"))
	}

	input, err := buildListingInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	created, reward, err := h.listings.Submit(c.Request().Context(), user, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrDocumentRequired):
			return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
		case errors.Is(err, service.ErrDocumentRejected):
			return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to create listing"))
		}
	}

	resp := util.Envelope{
		"listing":        toListingResponse(*created, created.City),
		"credits_earned": reward,
		"user":           user,
	}
	return c.JSON(http.StatusCreated, resp)
}

// vote handles POST /api/v1/listings/{id}/feedback
func (h *ListingHandler) vote(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid listing id"))
	}

	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}
	kind, ok := domain.ParseFeedbackKind(req.Type)
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error("feedback type must be helpful, misleading or scam"))
	}

	feedback, err := h.listings.VoteFeedback(c.Request().Context(), user.ID, id, kind)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyVoted):
			return c.JSON(http.StatusConflict, util.Error(err.Error()))
		case errors.Is(err, service.ErrListingNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to record feedback"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("safety_feedback", feedback))
}

// setAvailability handles PUT /api/v1/listings/{id}/availability
func (h *ListingHandler) setAvailability(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid listing id"))
	}

	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}

	updated, err := h.listings.SetAvailability(c.Request().Context(), user.ID, id, req.Available)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		case errors.Is(err, service.ErrListingForbidden):
			return c.JSON(http.StatusForbidden, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to update availability"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("listing", toListingResponse(*updated, updated.City)))
}

func buildListingInput(c echo.Context) (service.ListingCreateInput, error) {
	input := service.ListingCreateInput{
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
		Category:     domain.Category(c.FormValue("category")),
		Region:       domain.Region(c.FormValue("region")),
		City:         c.FormValue("city"),
		Location:     c.FormValue("location"),
		SpeaksNepali: formBool(c, "speaks_nepali"),
		Featured:     formBool(c, "featured"),
		Phone:        optionalString(c.FormValue("phone")),
		Whatsapp:     optionalString(c.FormValue("whatsapp")),
		DocumentRef:  c.FormValue("document_ref"),
	}

	if sub := strings.TrimSpace(c.FormValue("sub_category")); sub != "" {
		subCategory := domain.ServiceSubCategory(sub)
		input.SubCategory = &subCategory
	}
	if raw := strings.TrimSpace(c.FormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return input, errors.New("price must be a number")
		}
		input.Price = &price
	}
	if tags := strings.TrimSpace(c.FormValue("tags")); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				input.Tags = append(input.Tags, tag)
			}
		}
	}
	if raw := strings.TrimSpace(c.FormValue("rental_type")); raw != "" {
		rentalType := domain.RentalType(raw)
		input.RentalType = &rentalType
	}
	if raw := strings.TrimSpace(c.FormValue("ticket_type")); raw != "" {
		ticketType := domain.TicketType(raw)
		input.TicketType = &ticketType
	}
	if raw := strings.TrimSpace(c.FormValue("event_date")); raw != "" {
		eventDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return input, errors.New("event_date must be RFC 3339")
		}
		input.EventDate = &eventDate
	}
	if raw := strings.TrimSpace(c.FormValue("furnished")); raw != "" {
		furnished := raw == "true"
		input.Furnished = &furnished
	}
	if raw := strings.TrimSpace(c.FormValue("shared")); raw != "" {
		shared := raw == "true"
		input.Shared = &shared
	}

	fileHeader, err := c.FormFile("image")
	if err == nil && fileHeader != nil {
		if fileHeader.Size > maxListingImageBytes {
			return input, errors.New("image too large")
		}
		file, err := fileHeader.Open()
		if err != nil {
			return input, errors.New("unable to read image")
		}
		input.Image = &service.ImageUpload{
			Reader:      file,
			Size:        fileHeader.Size,
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
		}
	}
	return input, nil
}

// displayCityFor picks the city whose currency prices are rendered in: an
// explicit display_city param wins, then the browse city when it is a real
// one, then the signed-in member's city.
func displayCityFor(c echo.Context, filterCity string) string {
	if city := strings.TrimSpace(c.QueryParam("display_city")); city != "" {
		return city
	}
	if filterCity != "" && filterCity != domain.FilterAll && filterCity != domain.CityGlobal {
		return filterCity
	}
	if user, ok := CurrentUser(c); ok && user != nil && user.City != "" {
		return user.City
	}
	return ""
}

func toListingResponse(l domain.Listing, displayCity string) ListingResponse {
	return ListingResponse{
		Listing:      l,
		DisplayPrice: currency.Format(l.Price, displayCity, priceSuffix(l.Category)),
	}
}

func priceSuffix(category domain.Category) string {
	switch category {
	case domain.CategoryRental:
		return "/mo"
	case domain.CategoryServices:
		return "/hr"
	default:
		return ""
	}
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func formBool(c echo.Context, field string) bool {
	return strings.EqualFold(strings.TrimSpace(c.FormValue(field)), "true")
}
