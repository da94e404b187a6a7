package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/kamstrup/intmap"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/chuteworks/internal/config"
	"github.com/vovakirdan/chuteworks/internal/core"
	"github.com/vovakirdan/chuteworks/internal/registry"
)

// FigureSpec places a figure at level start.
type FigureSpec struct {
	At     Cell
	Blocks []Block
}

// Options describe a level to the World.
type Options struct {
	Geometry Geometry
	Config   config.SimConfig
	Seed     int64

	// Tool placements. A nil cell means the level has no such tool.
	Saw        *Cell
	Rotator    *Cell
	Transmuter *Cell

	Figures []FigureSpec

	// Shapes the spawner picks from. Empty means every registered shape.
	Shapes []string
	// SpawnTypes the spawner picks from. Empty means all three.
	SpawnTypes []BlockType
	// NoSpawner disables automatic figures in the input hole.
	NoSpawner bool
}

// Summary is the outcome of a session so far.
type Summary struct {
	// Delivered counts blocks, Figures counts whole figures.
	Delivered int
	Figures   int
	Cuts      int
	Upgrades  int
	Fuel      int
	Elapsed   float64
	// ByType counts delivered blocks per BlockType.
	ByType [3]int
}

// World is the simulation context for one level.
// It is not safe for concurrent use.
type World struct {
	geom   Geometry
	cfg    config.SimConfig
	ledger *Ledger
	flash  *Flash
	drag   DragResolver
	stats  Stats
	events Events

	entities *intmap.Map[EntityID, Entity]
	order    []EntityID
	nextID   EntityID

	saw        *Saw
	rotator    *Rotator
	transmuter *Transmuter
	outputs    [3]*Output

	rng        *rand.Rand
	shapes     []registry.Shape
	spawnTypes []BlockType
	spawner    bool

	elapsed       float64
	researchClock float64

	dragging   bool
	grabbed    EntityID
	grabOffset core.Vec2

	summary Summary
}

// NewWorld builds a world from opts.
func NewWorld(opts Options) (*World, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("sim: invalid config: %w", err)
	}

	w := &World{
		geom:     opts.Geometry,
		cfg:      opts.Config,
		ledger:   NewLedger(opts.Config.Ledger),
		flash:    NewFlash(opts.Config.Flash),
		drag:     NewDragResolver(opts.Config.Drag),
		entities: intmap.New[EntityID, Entity](32),
		rng:      rand.New(rand.NewSource(opts.Seed)),
		spawner:  !opts.NoSpawner,
	}
	w.stats = Stats{
		RotationCost:      opts.Config.Tools.RotationCost,
		RotatorSize:       opts.Config.Tools.RotatorSize,
		TransmutationCost: opts.Config.Tools.TransmutationCost,
	}

	for i, t := range chuteTypes {
		w.outputs[i] = NewOutput(w.allocID(), w.geom.Chutes[i], t)
		w.add(w.outputs[i])
	}

	if opts.Saw != nil {
		if err := w.checkToolCell("saw", *opts.Saw); err != nil {
			return nil, err
		}
		w.saw = NewSaw(w.allocID(), *opts.Saw)
		w.add(w.saw)
	}
	if opts.Rotator != nil {
		if err := w.checkToolCell("rotator", *opts.Rotator); err != nil {
			return nil, err
		}
		w.rotator = NewRotator(w.allocID(), *opts.Rotator, w.stats.RotatorSize)
		w.add(w.rotator)
	}
	if opts.Transmuter != nil {
		if err := w.checkToolCell("transmuter", *opts.Transmuter); err != nil {
			return nil, err
		}
		w.transmuter = NewTransmuter(w.allocID(), *opts.Transmuter, w.stats.TransmuterSize)
		w.add(w.transmuter)
	}

	for i, spec := range opts.Figures {
		if _, err := w.AddFigure(spec.At, spec.Blocks); err != nil {
			return nil, fmt.Errorf("sim: figure %d: %w", i, err)
		}
	}

	if err := w.loadShapes(opts.Shapes); err != nil {
		return nil, err
	}
	w.spawnTypes = opts.SpawnTypes
	if len(w.spawnTypes) == 0 {
		w.spawnTypes = AllBlockTypes
	}

	return w, nil
}

func (w *World) checkToolCell(name string, c Cell) error {
	if !w.geom.InBounds(c.X, c.Y) {
		return fmt.Errorf("sim: %s at (%d,%d) is outside the %dx%d field", name, c.X, c.Y, w.geom.Width, w.geom.Height)
	}
	return nil
}

func (w *World) loadShapes(ids []string) error {
	if len(ids) == 0 {
		for _, info := range registry.List() {
			ids = append(ids, info.ID)
		}
	}
	for _, id := range ids {
		s, err := registry.Create(id)
		if err != nil {
			return fmt.Errorf("sim: %w", err)
		}
		sw, sh := s.Bounds()
		if sw <= w.geom.HoleSize && sh <= w.geom.HoleSize {
			w.shapes = append(w.shapes, s)
		}
	}
	if w.spawner && len(w.shapes) == 0 {
		return fmt.Errorf("sim: no spawnable shape fits a hole of size %d", w.geom.HoleSize)
	}
	return nil
}

// SetEvents installs the event hook.
func (w *World) SetEvents(fn Events) { w.events = fn }

func (w *World) Geometry() Geometry      { return w.geom }
func (w *World) Ledger() *Ledger         { return w.ledger }
func (w *World) Flash() *Flash           { return w.flash }
func (w *World) Stats() Stats            { return w.stats }
func (w *World) Elapsed() float64        { return w.elapsed }
func (w *World) Saw() *Saw               { return w.saw }
func (w *World) Rotator() *Rotator       { return w.rotator }
func (w *World) Transmuter() *Transmuter { return w.transmuter }

// Summary returns the session totals with the current fuel and time.
func (w *World) Summary() Summary {
	s := w.summary
	s.Fuel = w.ledger.Fuel()
	s.Elapsed = w.elapsed
	return s
}

func (w *World) allocID() EntityID {
	w.nextID++
	return w.nextID
}

func (w *World) add(e Entity) {
	w.entities.Put(e.ID(), e)
	w.order = append(w.order, e.ID())
}

func (w *World) remove(id EntityID) {
	if !w.entities.Del(id) {
		return
	}
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Entity looks up an entity by ID.
func (w *World) Entity(id EntityID) (Entity, bool) {
	return w.entities.Get(id)
}

// Entities returns every entity in creation order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, len(w.order))
	for _, id := range w.order {
		if e, ok := w.entities.Get(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// Figures returns the figures in creation order.
func (w *World) Figures() []*Figure {
	var out []*Figure
	for _, e := range w.Entities() {
		if f, ok := e.(*Figure); ok {
			out = append(out, f)
		}
	}
	return out
}

// Tools returns the tools that currently exist in creation order.
// An unbuilt transmuter is left out.
func (w *World) Tools() []Entity {
	var out []Entity
	for _, e := range w.Entities() {
		if e.Category() != CategoryTool {
			continue
		}
		if t, ok := e.(*Transmuter); ok && !t.Active() {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Snapshot builds the collision snapshot of every entity except exclude.
func (w *World) Snapshot(exclude ...EntityID) CollisionSnapshot {
	set := mapset.New[EntityID]()
	for _, id := range exclude {
		set.Put(id)
	}
	return BuildSnapshot(w.geom, w.Entities(), set)
}

// AddFigure places a new figure. Its cells must be free and inside the
// field or the input hole.
func (w *World) AddFigure(at Cell, blocks []Block) (*Figure, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("figure has no blocks")
	}
	f := NewFigure(w.allocID(), at, blocks)
	if !w.fits(f.OccupiedOffsets(), f.AnchorCell(), w.Snapshot()) {
		return nil, fmt.Errorf("figure at (%d,%d) overlaps a wall or another entity", at.X, at.Y)
	}
	w.add(f)
	return f, nil
}

// FigureAt returns the figure covering cell c.
func (w *World) FigureAt(c Cell) (*Figure, bool) {
	for _, f := range w.Figures() {
		if _, ok := f.BlockAt(c); ok {
			return f, true
		}
	}
	return nil, false
}

// fits reports whether blocks at anchor land on open cells only.
func (w *World) fits(offsets []Cell, anchor Cell, snap CollisionSnapshot) bool {
	for _, off := range offsets {
		c := anchor.Add(off)
		switch {
		case w.geom.InBounds(c.X, c.Y):
			if snap.Field.Occupied(c.X, c.Y) {
				return false
			}
		case w.geom.InHole(c.X, c.Y), w.geom.IsOutputSlot(c.X, c.Y):
		default:
			return false
		}
	}
	return true
}

// Dragging returns the dragged figure, if any.
func (w *World) Dragging() (*Figure, bool) {
	if !w.dragging {
		return nil, false
	}
	e, ok := w.entities.Get(w.grabbed)
	if !ok {
		return nil, false
	}
	f, ok := e.(*Figure)
	return f, ok
}

// Press starts dragging the figure under the pointer.
func (w *World) Press(pointer core.Vec2) bool {
	if w.dragging {
		return false
	}
	cell := anchorCell(pointer)
	f, ok := w.FigureAt(cell)
	if !ok {
		return false
	}
	a := f.AnchorCell()
	w.dragging = true
	w.grabbed = f.ID()
	w.grabOffset = core.V(float64(cell.X-a.X), float64(cell.Y-a.Y))
	return true
}

// Release drops the dragged figure onto the nearest cell and settles
// deliveries and cuts.
func (w *World) Release() {
	f, ok := w.Dragging()
	w.dragging = false
	if !ok {
		return
	}
	f.Snap()
	if w.tryDeliver(f) {
		return
	}
	w.tryCut(f)
}

// Step advances the world by dt seconds with the pointer at pointer.
func (w *World) Step(dt float64, pointer core.Vec2) {
	if dt > 0 {
		w.elapsed += dt
		w.researchClock += dt
		w.flash.Advance(dt)
		w.accrueResearch()
	}

	if f, ok := w.Dragging(); ok {
		w.dragStep(f, pointer)
	}

	w.spawn()
}

func (w *World) accrueResearch() {
	pts := math.Floor((w.researchClock - w.cfg.Research.Delay) / w.cfg.Research.Interval)
	v := core.Clamp(int(math.Max(pts, 0)), 0, w.ledger.MaxResearch())
	if v != w.ledger.Research() {
		w.ledger.SetResearch(v)
	}
}

func (w *World) dragStep(f *Figure, pointer core.Vec2) {
	snap := w.Snapshot(f.ID())
	allowed := AllowedMoves(w.geom, snap, f)
	current := f.Anchor().Add(w.grabOffset)
	disp := w.drag.Step(current, pointer, allowed)
	f.MoveBy(w.constrain(f, disp, allowed, snap))
}

// constrain keeps a displacement from carrying the figure into a cell it
// may not enter. A diagonal step that would land on an occupied cell, or
// whose horizontal leg crosses the saw blade on the destination row, falls
// back to one of its axes.
func (w *World) constrain(f *Figure, disp core.Vec2, allowed Moves, snap CollisionSnapshot) core.Vec2 {
	from := f.AnchorCell()
	offsets := f.OccupiedOffsets()
	try := func(d core.Vec2) bool {
		to := anchorCell(f.Anchor().Add(d))
		dx, dy := to.X-from.X, to.Y-from.Y
		if core.Abs(dx) > 1 || core.Abs(dy) > 1 {
			return false
		}
		if (dx < 0 && !allowed.Left) || (dx > 0 && !allowed.Right) ||
			(dy < 0 && !allowed.Down) || (dy > 0 && !allowed.Up) {
			return false
		}
		if dx != 0 && dy != 0 {
			dir := DirRight
			if dx < 0 {
				dir = DirLeft
			}
			for _, o := range offsets {
				c := to.Add(o)
				if crossesBlade(snap, c.X, c.Y, dir) {
					return false
				}
			}
		}
		return (dx == 0 && dy == 0) || w.fits(offsets, to, snap)
	}
	for _, d := range []core.Vec2{disp, core.V(disp.X, 0), core.V(0, disp.Y)} {
		if try(d) {
			return d
		}
	}
	return core.Vec2{}
}

// tryDeliver consumes a figure resting on a chute slot whose blocks all
// match the chute. Red deliveries need one fuel per block.
func (w *World) tryDeliver(f *Figure) bool {
	chute, onChute := BlockGreen, false
	for _, c := range AbsoluteCells(f) {
		if t, ok := w.geom.ChuteAt(c.X); ok && c.Y == -1 {
			chute, onChute = t, true
			break
		}
	}
	if !onChute || !f.Uniform(chute) {
		return false
	}
	if chute == BlockRed && w.ledger.Fuel() < f.Len() {
		w.outOfFuel(f, f.Len())
		return false
	}
	for i := 0; i < f.Len(); i++ {
		w.ledger.TryOutput(chute)
	}
	w.remove(f.ID())
	w.summary.Delivered += f.Len()
	w.summary.Figures++
	w.summary.ByType[chute] += f.Len()
	w.events.emit(Event{Kind: EventDeliver, Figure: f.ID(), Blocks: f.Len(), Type: chute})
	return true
}

// tryCut splits a figure lying across the saw blade into two.
func (w *World) tryCut(f *Figure) bool {
	if w.saw == nil {
		return false
	}
	snap := w.Snapshot(f.ID())
	left, lok := f.BlockAt(snap.LeftOfSawBlade)
	right, rok := f.BlockAt(snap.RightOfSawBlade)
	if !lok || !rok {
		return false
	}
	cost := w.stats.CutCost(left.Type) + w.stats.CutCost(right.Type)
	if !w.ledger.Spend(cost) {
		w.outOfFuel(f, cost)
		return false
	}

	at := f.AnchorCell()
	lb, rb := f.splitAtColumn(snap.RightOfSawBlade.X)
	w.remove(f.ID())
	lf := NewFigure(w.allocID(), at, lb)
	rf := NewFigure(w.allocID(), at, rb)
	w.add(lf)
	w.add(rf)
	w.summary.Cuts++
	w.events.emit(Event{Kind: EventCut, Figure: f.ID(), Blocks: f.Len(), Cost: cost})
	return true
}

func (w *World) outOfFuel(f *Figure, need int) {
	w.flash.Start()
	w.events.emit(Event{Kind: EventOutOfFuel, Figure: f.ID(), Cost: need})
}

// figure returns the resting figure with the given ID.
func (w *World) figure(id EntityID) (*Figure, bool) {
	if w.dragging && w.grabbed == id {
		return nil, false
	}
	e, ok := w.entities.Get(id)
	if !ok {
		return nil, false
	}
	f, ok := e.(*Figure)
	return f, ok
}

// Rotate turns a figure inside the rotator zone 90 degrees clockwise.
func (w *World) Rotate(id EntityID) bool {
	f, ok := w.figure(id)
	if !ok || w.rotator == nil {
		return false
	}
	zone := w.rotator.Zone()
	if !zoneContains(zone, AbsoluteCells(f)) {
		return false
	}
	rotated := f.rotatedBlocks()
	a := f.AnchorCell()
	offsets := make([]Cell, len(rotated))
	cells := make([]Cell, len(rotated))
	for i, b := range rotated {
		offsets[i] = b.Offset
		cells[i] = a.Add(b.Offset)
	}
	if !zoneContains(zone, cells) || !w.fits(offsets, a, w.Snapshot(f.ID())) {
		return false
	}
	if !w.ledger.Spend(w.stats.RotationCost) {
		w.outOfFuel(f, w.stats.RotationCost)
		return false
	}
	f.blocks = rotated
	f.sortBlocks()
	w.events.emit(Event{Kind: EventRotate, Figure: f.ID(), Blocks: f.Len(), Cost: w.stats.RotationCost})
	return true
}

// Transmute recolors every block of a figure inside the transmuter zone.
func (w *World) Transmute(id EntityID) bool {
	f, ok := w.figure(id)
	if !ok || w.transmuter == nil || !w.transmuter.Active() {
		return false
	}
	if !zoneContains(w.transmuter.Zone(), AbsoluteCells(f)) {
		return false
	}
	cost := w.stats.TransmutationCost
	if !w.ledger.Spend(cost) {
		w.outOfFuel(f, cost)
		return false
	}
	for i := range f.blocks {
		f.blocks[i].Type = f.blocks[i].Type.Next()
	}
	w.events.emit(Event{Kind: EventTransmute, Figure: f.ID(), Blocks: f.Len(), Cost: cost})
	return true
}

// UpgradeAvailability reports which upgrades the current stats permit.
func (w *World) UpgradeAvailability() Availability {
	return w.stats.Availability()
}

// ResearchComplete reports whether enough research has accrued for an upgrade.
func (w *World) ResearchComplete() bool {
	return w.ledger.Research() >= w.ledger.MaxResearch()
}

// ApplyUpgrade applies u if it is available and research is complete.
// Research and its clock restart afterwards. Panics on a token outside
// the upgrade set.
func (w *World) ApplyUpgrade(u Upgrade) bool {
	next := w.stats.Apply(u)
	if !w.stats.Availability()[u] || !w.ResearchComplete() {
		return false
	}
	w.stats = next
	if w.rotator != nil {
		w.rotator.size = w.stats.RotatorSize
	}
	if w.transmuter != nil {
		w.transmuter.size = w.stats.TransmuterSize
	}
	w.researchClock = 0
	w.ledger.SetResearch(0)
	w.summary.Upgrades++
	w.events.emit(Event{Kind: EventUpgrade, Upgrade: u})
	return true
}

// holeOccupied reports whether any figure has a block in the input hole.
func (w *World) holeOccupied() bool {
	for _, f := range w.Figures() {
		for _, c := range AbsoluteCells(f) {
			if c.Y >= w.geom.Height {
				return true
			}
		}
	}
	return false
}

func (w *World) spawn() {
	if !w.spawner || len(w.shapes) == 0 || w.holeOccupied() {
		return
	}
	s := w.shapes[w.rng.Intn(len(w.shapes))]
	t := w.spawnTypes[w.rng.Intn(len(w.spawnTypes))]
	blocks := make([]Block, len(s.Blocks))
	for i, c := range ShapeCells(s) {
		blocks[i] = Block{Offset: c, Type: t}
	}
	f, err := w.AddFigure(w.geom.SpawnCell(), blocks)
	if err != nil {
		return
	}
	w.events.emit(Event{Kind: EventSpawn, Figure: f.ID(), Blocks: f.Len(), Type: t})
}
