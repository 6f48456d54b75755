package routing

import (
	"fmt"

	"ghost-flight/internal/models"
)

// DefaultMaxIterations bounds the number of 2-opt refinement passes
const DefaultMaxIterations = 100

// Optimizer orders a control point list to reduce total travel distance
type Optimizer interface {
	Optimize(points []models.Coordinates) *models.OptimizedRoute
}

// ControlPoints is the resolved input of a route request
type ControlPoints struct {
	Origin       models.Coordinates
	Destination  models.Coordinates
	Restrictions []models.Coordinates
}

// List returns [origin, restrictions..., destination]
func (c ControlPoints) List() []models.Coordinates {
	points := make([]models.Coordinates, 0, len(c.Restrictions)+2)
	points = append(points, c.Origin)
	points = append(points, c.Restrictions...)
	points = append(points, c.Destination)
	return points
}

// ErrRouteInvalid is returned when a control point cannot be resolved
type ErrRouteInvalid struct {
	Field  string
	Index  int
	Reason string
}

func (e *ErrRouteInvalid) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid route input: %s[%d]: %s", e.Field, e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid route input: %s: %s", e.Field, e.Reason)
}
