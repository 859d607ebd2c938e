package geometry

import (
	"github.com/davidtemplin/mmlt/pkg/core"
)

// Primitive is anything a BVH can hold
type Primitive interface {
	core.Intersectable
	BoundingBox() AABB
}

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	Primitives  []Primitive // Set for leaf nodes only
}

// BVH accelerates nearest-hit queries over a fixed set of primitives
type BVH struct {
	Root *BVHNode
}

// Leaf threshold: if we have this many or fewer primitives, store them in a leaf node
const leafThreshold = 4

// NewBVH constructs a BVH from a slice of primitives
func NewBVH(primitives []Primitive) *BVH {
	if len(primitives) == 0 {
		return &BVH{}
	}

	// Partitioning reorders the slice; keep the caller's order intact
	items := make([]Primitive, len(primitives))
	copy(items, primitives)

	return &BVH{Root: buildBVH(items)}
}

// buildBVH splits at the midpoint of the longest axis until leaves are small
func buildBVH(primitives []Primitive) *BVHNode {
	box := primitives[0].BoundingBox()
	for _, p := range primitives[1:] {
		box = box.Union(p.BoundingBox())
	}

	if len(primitives) <= leafThreshold {
		return &BVHNode{BoundingBox: box, Primitives: primitives}
	}

	splitAxis := box.LongestAxis()
	split := axis(box.Center(), splitAxis)

	var left, right []Primitive
	for _, p := range primitives {
		if axis(p.BoundingBox().Center(), splitAxis) < split {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}

	// All centers on one side of the split
	if len(left) == 0 || len(right) == 0 {
		return &BVHNode{BoundingBox: box, Primitives: primitives}
	}

	return &BVHNode{
		BoundingBox: box,
		Left:        buildBVH(left),
		Right:       buildBVH(right),
	}
}

// Intersect returns the nearest interaction along the ray within [tMin, tMax]
func (bvh *BVH) Intersect(ray core.Ray, tMin, tMax float64) (*core.Interaction, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.Root.intersect(ray, tMin, tMax)
}

func (node *BVHNode) intersect(ray core.Ray, tMin, tMax float64) (*core.Interaction, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	var closest *core.Interaction
	closestSoFar := tMax

	if node.Primitives != nil {
		for _, p := range node.Primitives {
			if hit, ok := p.Intersect(ray, tMin, closestSoFar); ok {
				closest = hit
				closestSoFar = hit.Distance
			}
		}
		return closest, closest != nil
	}

	for _, child := range []*BVHNode{node.Left, node.Right} {
		if hit, ok := child.intersect(ray, tMin, closestSoFar); ok {
			closest = hit
			closestSoFar = hit.Distance
		}
	}
	return closest, closest != nil
}
