package handler

import (
	"github.com/gofiber/fiber/v2"

	"prelaunch/internal/http/middleware"
	"prelaunch/internal/service"
)

// ListBlogPosts lists published posts. An admin session also sees drafts and may filter on published.
//
// @Summary List blog posts
// @Tags blog
// @Produce json
// @Param tag query string false "Tag"
// @Param published query bool false "Admin only: filter by published state"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param skip query int false "Offset"
// @Success 200 {object} service.ListResult[model.BlogPost]
// @Router /api/blog/posts [get]
func ListBlogPosts(svc service.BlogService, auth middleware.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, skip, qerr := page(c)
		if qerr != nil {
			return qerr.write(c)
		}
		tag := c.Query("tag")

		if !auth.Authenticate(middleware.AdminToken(c)) {
			res, err := svc.ListPublished(c.UserContext(), tag, limit, skip)
			if err != nil {
				return writeServiceError(c, err)
			}
			return c.JSON(res)
		}

		published, qerr := optionalBool(c, "published")
		if qerr != nil {
			return qerr.write(c)
		}
		res, err := svc.List(c.UserContext(), service.BlogListQuery{Published: published, Tag: tag, Limit: limit, Skip: skip})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// @Summary Get a published post by slug
// @Tags blog
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} model.BlogPost
// @Failure 404 {object} errorPayload
// @Router /api/blog/posts/slug/{slug} [get]
func GetBlogPostBySlug(svc service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.GetPublishedBySlug(c.UserContext(), c.Params("slug"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// @Summary Get a post
// @Tags blog
// @Produce json
// @Security AdminSession
// @Param id path string true "Post ID"
// @Success 200 {object} model.BlogPost
// @Failure 404 {object} errorPayload
// @Router /api/blog/posts/{id} [get]
func GetBlogPost(svc service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return invalidID(c)
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// @Summary Create a post
// @Tags blog
// @Accept json
// @Produce json
// @Security AdminSession
// @Param request body service.BlogPostInput true "Post"
// @Success 201 {object} model.BlogPost
// @Failure 400 {object} errorPayload
// @Router /api/blog/posts [post]
func CreateBlogPost(svc service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.BlogPostInput
		if err := strictDecode(c, &in); err != nil {
			return invalidBody(c)
		}
		p, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// @Summary Update a post
// @Tags blog
// @Accept json
// @Produce json
// @Security AdminSession
// @Param id path string true "Post ID"
// @Param request body service.BlogPostPatch true "Fields to change"
// @Success 200 {object} model.BlogPost
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/blog/posts/{id} [put]
func UpdateBlogPost(svc service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return invalidID(c)
		}
		var patch service.BlogPostPatch
		if err := strictDecode(c, &patch); err != nil {
			return invalidBody(c)
		}
		p, err := svc.Update(c.UserContext(), id, patch)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// @Summary Delete a post
// @Tags blog
// @Security AdminSession
// @Param id path string true "Post ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/blog/posts/{id} [delete]
func DeleteBlogPost(svc service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return invalidID(c)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
