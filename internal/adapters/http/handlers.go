package http

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/core/usecases"
	"github.com/samirrijal/bubblepoint/internal/pkg/report"
)

// bubblePointBody is the POST payload. Missing numbers take the calculator
// defaults.
type bubblePointBody struct {
	Temperature *float64 `json:"t_v"`
	X1          *float64 `json:"x1"`
	Component1  string   `json:"component1"`
	Component2  string   `json:"component2"`
}

// queryFloat parses a float query parameter, returning def when absent.
func queryFloat(c *fiber.Ctx, key string, def float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return v, nil
}

// requestFromQuery builds a request from ?t=&x1=&component1=&component2=.
// "t_v" is accepted as an alias of "t".
func requestFromQuery(c *fiber.Ctx) (domain.BubblePointRequest, error) {
	key := "t"
	if c.Query("t") == "" && c.Query("t_v") != "" {
		key = "t_v"
	}
	t, err := queryFloat(c, key, usecases.DefaultTemperature)
	if err != nil {
		return domain.BubblePointRequest{}, err
	}
	x1, err := queryFloat(c, "x1", usecases.DefaultX1)
	if err != nil {
		return domain.BubblePointRequest{}, err
	}
	return domain.BubblePointRequest{
		Temperature: t,
		X1:          x1,
		Component1:  domain.ComponentID(c.Query("component1")),
		Component2:  domain.ComponentID(c.Query("component2")),
	}, nil
}

func requestFromBody(c *fiber.Ctx) (domain.BubblePointRequest, error) {
	var body bubblePointBody
	if err := c.BodyParser(&body); err != nil {
		return domain.BubblePointRequest{}, errors.New("invalid request body")
	}
	req := domain.BubblePointRequest{
		Temperature: usecases.DefaultTemperature,
		X1:          usecases.DefaultX1,
		Component1:  domain.ComponentID(body.Component1),
		Component2:  domain.ComponentID(body.Component2),
	}
	if body.Temperature != nil {
		req.Temperature = *body.Temperature
	}
	if body.X1 != nil {
		req.X1 = *body.X1
	}
	return req, nil
}

// respondResult writes r as JSON, or as the plain-text results table when
// ?format=table is given.
func respondResult(c *fiber.Ctx, r *domain.EquilibriumResult) error {
	if strings.EqualFold(c.Query("format"), "table") {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return report.WriteTable(c, r)
	}
	return c.JSON(r)
}

// BubblePointHandler computes the bubble-point pressure from query parameters.
func BubblePointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := requestFromQuery(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		return calculate(c, deps, req)
	}
}

// BubblePointPostHandler computes the bubble-point pressure from a JSON body.
func BubblePointPostHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := requestFromBody(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		return calculate(c, deps, req)
	}
}

func calculate(c *fiber.Ctx, deps *Dependencies, req domain.BubblePointRequest) error {
	if err := usecases.ValidateOperatingRange(req); err != nil {
		return errBadRequest(c, err.Error())
	}
	result, err := deps.BubblePoints.Calculate(c.UserContext(), req)
	if err != nil {
		return errCalculation(c, err)
	}
	return respondResult(c, result)
}

// IsothermHandler samples p_vap over x1 at a fixed temperature.
func IsothermHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := queryFloat(c, "t", usecases.DefaultTemperature)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		if err := usecases.ValidateTemperature(t); err != nil {
			return errBadRequest(c, err.Error())
		}
		points := c.QueryInt("points", usecases.DefaultIsothermPoints)
		if err := usecases.ValidateIsothermPoints(points); err != nil {
			return errBadRequest(c, err.Error())
		}

		iso, err := deps.BubblePoints.Isotherm(c.UserContext(), t, points,
			domain.ComponentID(c.Query("component1")), domain.ComponentID(c.Query("component2")))
		if err != nil {
			return errCalculation(c, err)
		}

		if strings.EqualFold(c.Query("format"), "table") {
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return report.WriteIsotherm(c, iso)
		}
		return c.JSON(iso)
	}
}

// ListComponentsHandler returns the Antoine parameter table.
func ListComponentsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		components, err := deps.Components.List(c.UserContext())
		if err != nil {
			return errInternal(c, err.Error())
		}

		offset, limit := pageParams(c, 50, 100)
		pg := Pagination{Offset: offset, Limit: limit, Total: len(components)}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page(components, offset, limit), Pagination: pg})
	}
}

// GetComponentHandler returns a single component by id.
func GetComponentHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "component id is required")
		}

		component, err := deps.Components.Get(c.UserContext(), id)
		if errors.Is(err, domain.ErrUnknownComponent) {
			return errNotFound(c, "component not found")
		}
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(component)
	}
}
