// Package registry provides a global registry of figure shapes.
// Shape sets register themselves in init() functions, so the spawner and
// the level files can refer to shapes by ID without hardcoded tables.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Offset is a block position relative to the figure anchor.
// Y grows upward.
type Offset struct {
	X, Y int
}

// Shape is a named block layout.
type Shape struct {
	ID     string
	Title  string
	Blocks []Offset
}

// Bounds returns the width and height of the shape's bounding box.
func (s Shape) Bounds() (w, h int) {
	if len(s.Blocks) == 0 {
		return 0, 0
	}
	minX, minY := s.Blocks[0].X, s.Blocks[0].Y
	maxX, maxY := minX, minY
	for _, b := range s.Blocks[1:] {
		minX, maxX = min(minX, b.X), max(maxX, b.X)
		minY, maxY = min(minY, b.Y), max(maxY, b.Y)
	}
	return maxX - minX + 1, maxY - minY + 1
}

// ShapeInfo contains metadata about a registered shape.
type ShapeInfo struct {
	ID     string
	Title  string
	Blocks int
	Width  int
	Height int
}

// Factory returns a fresh copy of a shape.
type Factory func() Shape

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]ShapeInfo)
	mu        sync.RWMutex
)

// Register adds a shape factory to the registry.
// Typically called from an init() function.
// Panics if a shape with the same ID is already registered or if the
// shape has no blocks.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: shape %q already registered", id))
	}

	s := f()
	if len(s.Blocks) == 0 {
		panic(fmt.Sprintf("registry: shape %q has no blocks", id))
	}

	factories[id] = f
	w, h := s.Bounds()
	infos[id] = ShapeInfo{ID: id, Title: s.Title, Blocks: len(s.Blocks), Width: w, Height: h}
}

// List returns information about all registered shapes, sorted by ID.
func List() []ShapeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ShapeInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create returns a new copy of the shape with the given ID.
// Returns an error if the ID is not registered.
func Create(id string) (Shape, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return Shape{}, fmt.Errorf("registry: unknown shape %q", id)
	}

	s := f()
	s.ID = id
	return s, nil
}

// Exists checks if a shape with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
