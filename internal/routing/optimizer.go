package routing

import (
	"log"
	"math"
	"time"

	"ghost-flight/internal/geo"
	"ghost-flight/internal/models"
)

// Tour is a visiting order over a point list
type Tour struct {
	Order   []int
	TotalKm float64
}

// Swap describes one accepted 2-opt move
type Swap struct {
	Pass    int
	I, J    int
	OldCost float64
	NewCost float64
}

// TwoOpt builds a nearest-neighbour tour from index 0 and refines it with
// first-improvement 2-opt. It holds no per-call state and is safe for
// concurrent use.
type TwoOpt struct {
	maxIterations int
	onSwap        func(Swap)
}

// Option configures a TwoOpt optimizer
type Option func(*TwoOpt)

// WithMaxIterations overrides the refinement pass limit
func WithMaxIterations(n int) Option {
	return func(o *TwoOpt) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// WithSwapObserver registers a callback invoked for every accepted swap
func WithSwapObserver(fn func(Swap)) Option {
	return func(o *TwoOpt) {
		o.onSwap = fn
	}
}

// NewTwoOpt creates a route optimizer
func NewTwoOpt(opts ...Option) *TwoOpt {
	o := &TwoOpt{maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize returns the reordered points and their total length in km,
// rounded to two decimals. Fewer than two points are returned unchanged.
func (o *TwoOpt) Optimize(points []models.Coordinates) *models.OptimizedRoute {
	if len(points) < 2 {
		return &models.OptimizedRoute{TotalKm: 0, Route: points}
	}

	tour := o.Tour(points)

	route := make([]models.Coordinates, len(tour.Order))
	for i, idx := range tour.Order {
		route[i] = points[idx]
	}

	return &models.OptimizedRoute{
		TotalKm: math.Round(geo.PathLength(route)*100) / 100,
		Route:   route,
	}
}

// Tour computes the visiting order and its unrounded open-path length
func (o *TwoOpt) Tour(points []models.Coordinates) Tour {
	n := len(points)
	if n < 2 {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		return Tour{Order: order}
	}

	start := time.Now()
	dist := distanceMatrix(points)

	order := nearestNeighbor(dist)
	initial := pathCost(order, dist)

	running, passes, swaps := o.refine(order, dist, initial)
	final := pathCost(order, dist)

	log.Printf("[ROUTE] Optimized: points=%d passes=%d swaps=%d initial_km=%.2f refined_km=%.2f final_km=%.2f",
		n, passes, swaps, initial, running, final)
	log.Printf("[TIMING] Route optimization: %v", time.Since(start))

	return Tour{Order: order, TotalKm: final}
}

// refine runs bounded 2-opt passes in place. The second removed edge wraps
// to order[0] when j is the last position, so the pairing cost treats the
// path as a cycle even though the reported total does not.
func (o *TwoOpt) refine(order []int, dist [][]float64, total float64) (float64, int, int) {
	n := len(order)
	passes, swaps := 0, 0

	for passes < o.maxIterations {
		passes++
		improved := false

	scan:
		for i := 0; i < n-1; i++ {
			for j := i + 2; j < n; j++ {
				a, b := order[i], order[i+1]
				c, d := order[j], order[(j+1)%n]

				oldCost := dist[a][b] + dist[c][d]
				newCost := dist[a][c] + dist[b][d]

				if newCost < oldCost {
					reverse(order, i+1, j)
					total += newCost - oldCost
					improved = true
					swaps++
					if o.onSwap != nil {
						o.onSwap(Swap{Pass: passes, I: i, J: j, OldCost: oldCost, NewCost: newCost})
					}
					break scan
				}
			}
		}

		if !improved {
			break
		}
	}

	return total, passes, swaps
}

// nearestNeighbor starts at index 0 and repeatedly appends the closest
// unvisited index. Ties go to the lowest index.
func nearestNeighbor(dist [][]float64) []int {
	n := len(dist)
	order := make([]int, 0, n)
	visited := make([]bool, n)

	order = append(order, 0)
	visited[0] = true

	for len(order) < n {
		last := order[len(order)-1]
		nearest := -1
		minDist := math.Inf(1)

		for k := 0; k < n; k++ {
			if visited[k] {
				continue
			}
			if nearest == -1 || dist[last][k] < minDist {
				nearest = k
				minDist = dist[last][k]
			}
		}

		order = append(order, nearest)
		visited[nearest] = true
	}

	return order
}

func distanceMatrix(points []models.Coordinates) [][]float64 {
	n := len(points)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := geo.Distance(points[i], points[j])
			matrix[i][j] = d
			matrix[j][i] = d
		}
	}
	return matrix
}

func pathCost(order []int, dist [][]float64) float64 {
	total := 0.0
	for i := 0; i+1 < len(order); i++ {
		total += dist[order[i]][order[i+1]]
	}
	return total
}

func reverse(order []int, i, j int) {
	for i < j {
		order[i], order[j] = order[j], order[i]
		i++
		j--
	}
}
