package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
	"github.com/samirrijal/bubblepoint/internal/core/usecases"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	antoineType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AntoineParameters",
		Fields: graphql.Fields{
			"a": &graphql.Field{Type: graphql.Float},
			"b": &graphql.Field{Type: graphql.Float},
			"c": &graphql.Field{Type: graphql.Float},
		},
	})

	componentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Component",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.String},
			"name":    &graphql.Field{Type: graphql.String},
			"antoine": &graphql.Field{Type: antoineType},
		},
	})

	resultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "EquilibriumResult",
		Fields: graphql.Fields{
			"component1": &graphql.Field{Type: graphql.String},
			"component2": &graphql.Field{Type: graphql.String},
			"t_v":        &graphql.Field{Type: graphql.Float},
			"x1":         &graphql.Field{Type: graphql.Float},
			"x2":         &graphql.Field{Type: graphql.Float},
			"p_sat1":     &graphql.Field{Type: graphql.Float},
			"p_sat2":     &graphql.Field{Type: graphql.Float},
			"p_min":      &graphql.Field{Type: graphql.Float},
			"p_max":      &graphql.Field{Type: graphql.Float},
			"p_vap":      &graphql.Field{Type: graphql.Float},
			"y1":         &graphql.Field{Type: graphql.Float},
			"y2":         &graphql.Field{Type: graphql.Float},
			"iterations": &graphql.Field{Type: graphql.Int},
		},
	})

	pointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "IsothermPoint",
		Fields: graphql.Fields{
			"x1":    &graphql.Field{Type: graphql.Float},
			"y1":    &graphql.Field{Type: graphql.Float},
			"p_min": &graphql.Field{Type: graphql.Float},
			"p_max": &graphql.Field{Type: graphql.Float},
			"p_vap": &graphql.Field{Type: graphql.Float},
		},
	})

	isothermType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Isotherm",
		Fields: graphql.Fields{
			"component1": &graphql.Field{Type: graphql.String},
			"component2": &graphql.Field{Type: graphql.String},
			"t_v":        &graphql.Field{Type: graphql.Float},
			"p_sat1":     &graphql.Field{Type: graphql.Float},
			"p_sat2":     &graphql.Field{Type: graphql.Float},
			"points":     &graphql.Field{Type: graphql.NewList(pointType)},
		},
	})

	mixtureArgs := graphql.FieldConfigArgument{
		"component1": &graphql.ArgumentConfig{Type: graphql.String},
		"component2": &graphql.ArgumentConfig{Type: graphql.String},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"components": &graphql.Field{
				Type:        graphql.NewList(componentType),
				Description: "List the components with Antoine parameters",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Components.List(p.Context)
				},
			},
			"bubblePoint": &graphql.Field{
				Type:        resultType,
				Description: "Bubble-point pressure of a binary mixture",
				Args: withArgs(mixtureArgs, graphql.FieldConfigArgument{
					"t":  &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: usecases.DefaultTemperature},
					"x1": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: usecases.DefaultX1},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req := domain.BubblePointRequest{
						Temperature: floatArg(p.Args, "t"),
						X1:          floatArg(p.Args, "x1"),
						Component1:  componentArg(p.Args, "component1"),
						Component2:  componentArg(p.Args, "component2"),
					}
					if err := usecases.ValidateOperatingRange(req); err != nil {
						return nil, err
					}
					return deps.BubblePoints.Calculate(p.Context, req)
				},
			},
			"isotherm": &graphql.Field{
				Type:        isothermType,
				Description: "Bubble-point pressure over an evenly spaced x1 grid",
				Args: withArgs(mixtureArgs, graphql.FieldConfigArgument{
					"t":      &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: usecases.DefaultTemperature},
					"points": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: usecases.DefaultIsothermPoints},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					t := floatArg(p.Args, "t")
					if err := usecases.ValidateTemperature(t); err != nil {
						return nil, err
					}
					points, _ := p.Args["points"].(int)
					if err := usecases.ValidateIsothermPoints(points); err != nil {
						return nil, err
					}
					return deps.BubblePoints.Isotherm(p.Context, t, points,
						componentArg(p.Args, "component1"), componentArg(p.Args, "component2"))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

func withArgs(base, extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	out := make(graphql.FieldConfigArgument, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func floatArg(args map[string]interface{}, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func componentArg(args map[string]interface{}, key string) domain.ComponentID {
	s, _ := args[key].(string)
	return domain.ComponentID(s)
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
