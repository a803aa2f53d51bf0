package handler

import (
	"github.com/gofiber/fiber/v2"

	"prelaunch/internal/model"
	"prelaunch/internal/service"
)

type subscribeResponse struct {
	Message    string            `json:"message"`
	Outcome    service.Outcome   `json:"outcome"`
	Subscriber *model.Subscriber `json:"subscriber"`
}

type unsubscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe captures an email address from the public site.
//
// @Summary Subscribe an email address
// @Tags subscribers
// @Accept json
// @Produce json
// @Param request body service.SubscribeInput true "Subscription"
// @Success 201 {object} subscribeResponse "new subscriber"
// @Success 200 {object} subscribeResponse "already active or reactivated"
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/subscribe [post]
func Subscribe(svc service.SubscriberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.SubscribeInput
		if err := strictDecode(c, &in); err != nil {
			return invalidBody(c)
		}

		res, err := svc.Subscribe(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}

		status := fiber.StatusOK
		if res.Outcome == service.OutcomeCreated {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(subscribeResponse{
			Message:    res.Outcome.Message(),
			Outcome:    res.Outcome,
			Subscriber: res.Subscriber,
		})
	}
}

// Unsubscribe opts an email address out. Repeating it is harmless.
//
// @Summary Unsubscribe an email address
// @Tags subscribers
// @Accept json
// @Produce json
// @Param request body unsubscribeRequest true "Email"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/unsubscribe [post]
func Unsubscribe(svc service.SubscriberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in unsubscribeRequest
		if err := strictDecode(c, &in); err != nil {
			return invalidBody(c)
		}
		if _, err := svc.Unsubscribe(c.UserContext(), in.Email); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(messageResponse{Message: "Successfully unsubscribed"})
	}
}

// @Summary List subscribers
// @Tags subscribers
// @Produce json
// @Security AdminSession
// @Param status query string false "active or unsubscribed"
// @Param source query string false "Source tag"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param skip query int false "Offset"
// @Success 200 {object} service.ListResult[model.Subscriber]
// @Failure 401 {object} errorPayload
// @Router /api/subscribers [get]
func ListSubscribers(svc service.SubscriberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, skip, qerr := page(c)
		if qerr != nil {
			return qerr.write(c)
		}
		res, err := svc.List(c.UserContext(), service.SubscriberListQuery{
			Status: model.SubscriberStatus(c.Query("status")),
			Source: c.Query("source"),
			Limit:  limit,
			Skip:   skip,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// @Summary Get a subscriber
// @Tags subscribers
// @Produce json
// @Security AdminSession
// @Param id path string true "Subscriber ID"
// @Success 200 {object} model.Subscriber
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/subscribers/{id} [get]
func GetSubscriber(svc service.SubscriberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return invalidID(c)
		}
		sub, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sub)
	}
}

// @Summary Update a subscriber
// @Tags subscribers
// @Accept json
// @Produce json
// @Security AdminSession
// @Param id path string true "Subscriber ID"
// @Param request body service.SubscriberPatch true "Fields to change"
// @Success 200 {object} model.Subscriber
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/subscribers/{id} [put]
func UpdateSubscriber(svc service.SubscriberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return invalidID(c)
		}
		var p service.SubscriberPatch
		if err := strictDecode(c, &p); err != nil {
			return invalidBody(c)
		}
		sub, err := svc.Update(c.UserContext(), id, p)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sub)
	}
}

// @Summary Delete a subscriber
// @Tags subscribers
// @Security AdminSession
// @Param id path string true "Subscriber ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/subscribers/{id} [delete]
func DeleteSubscriber(svc service.SubscriberService) fiber.Handler {
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

// @Summary Subscriber counts by status
// @Tags subscribers
// @Produce json
// @Security AdminSession
// @Success 200 {object} model.SubscriberStats
// @Router /api/subscribers/stats [get]
func SubscriberStats(svc service.SubscriberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(stats)
	}
}
