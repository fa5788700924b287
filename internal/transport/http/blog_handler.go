package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
	"github.com/sajhahub/sajha-hub-backend/internal/service"
	"github.com/sajhahub/sajha-hub-backend/internal/util"
)

type BlogHandler struct {
	blogs *service.BlogService
}

type blogCreateRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	ImageURL *string `json:"image_url,omitempty"`
}

func RegisterBlogs(e *echo.Echo, auth *service.AuthService, blogs *service.BlogService) {
	handler := &BlogHandler{blogs: blogs}

	e.GET("/api/v1/blogs", handler.list)

	protected := e.Group("/api/v1/blogs", RequireAuth(auth))
	protected.POST("", handler.publish)
}

// list handles GET /api/v1/blogs
func (h *BlogHandler) list(c echo.Context) error {
	limit := queryInt(c, "limit", 0)
	offset := queryInt(c, "offset", 0)

	entries, err := h.blogs.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list blogs"))
	}
	if entries == nil {
		entries = []domain.BlogEntry{}
	}
	return c.JSON(http.StatusOK, util.Data("blogs", entries))
}

// publish handles POST /api/v1/blogs
func (h *BlogHandler) publish(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req blogCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid payload"))
	}

	entry, reward, err := h.blogs.Publish(c.Request().Context(), user, service.BlogCreateInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: domain.BlogCategory(req.Category),
		ImageURL: req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrBlogValidation) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to publish blog"))
	}

	return c.JSON(http.StatusCreated, util.Envelope{
		"blog":           entry,
		"credits_earned": reward,
		"user":           user,
	})
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
