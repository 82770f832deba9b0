package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donorhub/donorhub-api/internal/core/domain"
	"github.com/donorhub/donorhub-api/internal/core/ports"
)

// BlogHandler owns the editorial endpoints.
type BlogHandler struct {
	blogs ports.BlogService
}

func NewBlogHandler(blogs ports.BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

// Create posts a new draft authored by the caller.
//
// @Summary      Create a blog post
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBlogRequest  true  "Post details"
// @Success      201   {object}  domain.Blog
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	author, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.blogs.Create(c.Request().Context(), author, ports.CreateBlogInput{
		Title:     req.Title,
		Thumbnail: req.Thumbnail,
		Content:   req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// List pages through posts. The public sees published posts only; admins may
// request any status.
//
// @Summary      List blog posts
// @Tags         blogs
// @Produce      json
// @Param        status  query     string  false  "Filter by status (admin only)"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  pageEnvelope
// @Router       /blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	result, err := h.blogs.List(c.Request().Context(), optionalUser(c), ports.ListBlogsFilter{
		Status: domain.BlogStatus(c.QueryParam("status")),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pageEnvelope{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get returns a single post. Drafts are only visible to the author or an
// admin.
//
// @Summary      Get a blog post
// @Tags         blogs
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  domain.Blog
// @Failure      404  {object}  map[string]string
// @Router       /blogs/{id} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	b, err := h.blogs.Get(c.Request().Context(), optionalUser(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// Publish makes a draft public.
//
// @Summary      Publish a blog post
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /blogs/{id}/publish [patch]
func (h *BlogHandler) Publish(c echo.Context) error {
	if err := h.blogs.Publish(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "blog published"})
}

// Unpublish reverts a post to draft.
//
// @Summary      Unpublish a blog post
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /blogs/{id}/unpublish [patch]
func (h *BlogHandler) Unpublish(c echo.Context) error {
	if err := h.blogs.Unpublish(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "blog unpublished"})
}

// Delete removes a post. Author or admin only.
//
// @Summary      Delete a blog post
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /blogs/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.blogs.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "blog deleted"})
}
