package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// strictDecode parses a JSON body into dst, rejecting unknown fields and trailing data.
func strictDecode(c *fiber.Ctx, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func invalidBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
}

// pathID returns the :id param when it is a valid ObjectID hex string.
func pathID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	return id, primitive.IsValidObjectID(id)
}

func invalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
}

// queryError is a malformed query parameter, reported as 400 with its own code.
type queryError struct {
	code    string
	message string
}

func (e *queryError) write(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, e.code, e.message)
}

// page reads limit and skip query parameters. Missing values are zero and left to the service defaults.
func page(c *fiber.Ctx) (limit, skip int, qerr *queryError) {
	var err error
	if v := c.Query("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			return 0, 0, &queryError{"INVALID_LIMIT", "invalid limit"}
		}
	}
	if v := c.Query("skip"); v != "" {
		if skip, err = strconv.Atoi(v); err != nil {
			return 0, 0, &queryError{"INVALID_SKIP", "invalid skip"}
		}
	}
	return limit, skip, nil
}

// optionalBool parses a tri-state boolean query parameter.
func optionalBool(c *fiber.Ctx, key string) (*bool, *queryError) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, &queryError{"INVALID_QUERY", "invalid " + key}
	}
	return &b, nil
}

type messageResponse struct {
	Message string `json:"message"`
}
