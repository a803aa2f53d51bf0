package handler

import (
	"github.com/gofiber/fiber/v2"

	"prelaunch/internal/service"
)

type imageAltRequest struct {
	Alt *string `json:"alt"`
}

type imageURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"`
}

// UploadImage stores a multipart image (field "file", optional "alt").
//
// @Summary Upload an image
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Param alt formData string false "Alt text"
// @Success 201 {object} model.Image
// @Failure 400 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Router /api/images [post]
func UploadImage(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		img, err := svc.Upload(c.UserContext(), service.UploadInput{
			Reader:   f,
			Filename: fh.Filename,
			Size:     fh.Size,
			Alt:      c.FormValue("alt"),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(img)
	}
}

// @Summary List images
// @Tags images
// @Produce json
// @Param limit query int false "Page size (default 10, max 100)"
// @Param skip query int false "Offset"
// @Success 200 {object} service.ListResult[model.Image]
// @Router /api/images [get]
func ListImages(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, skip, qerr := page(c)
		if qerr != nil {
			return qerr.write(c)
		}
		res, err := svc.List(c.UserContext(), limit, skip)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// @Summary Get image metadata
// @Tags images
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} model.Image
// @Failure 404 {object} errorPayload
// @Router /api/images/{id} [get]
func GetImage(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return invalidID(c)
		}
		img, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(img)
	}
}

// ImageURL returns a presigned download URL for the stored object.
//
// @Summary Presigned download URL
// @Tags images
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} imageURLResponse
// @Failure 404 {object} errorPayload
// @Router /api/images/{id}/url [get]
func ImageURL(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return invalidID(c)
		}
		u, err := svc.PresignURL(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(imageURLResponse{URL: u, ExpiresIn: int(service.PresignExpiry.Seconds())})
	}
}

// @Summary Update image alt text
// @Tags images
// @Accept json
// @Produce json
// @Security AdminSession
// @Param id path string true "Image ID"
// @Param request body imageAltRequest true "Alt text"
// @Success 200 {object} model.Image
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/images/{id} [put]
func UpdateImage(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return invalidID(c)
		}
		var in imageAltRequest
		if err := strictDecode(c, &in); err != nil || in.Alt == nil {
			return invalidBody(c)
		}
		img, err := svc.UpdateAlt(c.UserContext(), id, *in.Alt)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(img)
	}
}

// @Summary Delete an image
// @Tags images
// @Security AdminSession
// @Param id path string true "Image ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/images/{id} [delete]
func DeleteImage(svc service.ImageService) fiber.Handler {
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
