package handler

import (
	"github.com/gofiber/fiber/v2"

	"prelaunch/internal/service"
)

// Signup registers a site account.
//
// @Summary Create an account
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.SignupInput true "Account"
// @Success 201 {object} model.User
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/users/signup [post]
func Signup(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.SignupInput
		if err := strictDecode(c, &in); err != nil {
			return invalidBody(c)
		}
		u, err := svc.Signup(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// Login authenticates a site account and returns a signed token.
//
// @Summary Log in
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Credentials"
// @Success 200 {object} service.LoginResult
// @Failure 401 {object} errorPayload
// @Router /api/users/login [post]
func Login(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.LoginInput
		if err := strictDecode(c, &in); err != nil {
			return invalidBody(c)
		}
		res, err := svc.Login(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// @Summary List users
// @Tags users
// @Produce json
// @Security AdminSession
// @Param limit query int false "Page size (default 10, max 100)"
// @Param skip query int false "Offset"
// @Success 200 {object} service.ListResult[model.User]
// @Failure 401 {object} errorPayload
// @Router /api/users [get]
func ListUsers(svc service.UserService) fiber.Handler {
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

// @Summary Get a user
// @Tags users
// @Produce json
// @Security AdminSession
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errorPayload
// @Router /api/users/{id} [get]
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return invalidID(c)
		}
		u, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security AdminSession
// @Param id path string true "User ID"
// @Param request body service.UserPatch true "Fields to change"
// @Success 200 {object} model.User
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/users/{id} [put]
func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return invalidID(c)
		}
		var p service.UserPatch
		if err := strictDecode(c, &p); err != nil {
			return invalidBody(c)
		}
		u, err := svc.Update(c.UserContext(), id, p)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// @Summary Delete a user
// @Tags users
// @Security AdminSession
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/users/{id} [delete]
func DeleteUser(svc service.UserService) fiber.Handler {
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
