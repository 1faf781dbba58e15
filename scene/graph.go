// Package scene implements the node hierarchy. Nodes live in a flat arena
// and refer to each other by index, so the tree never holds pointer cycles.
package scene

import (
	"errors"
	"fmt"

	"skyrunner/math"
	"skyrunner/physics"
)

var (
	ErrInvalidNode = errors.New("invalid node")
	ErrCycle       = errors.New("node would become its own ancestor")
	ErrNotChild    = errors.New("node is not a child of parent")
	ErrRoot        = errors.New("operation not allowed on the root node")
)

// Graph owns every node. Only nodes reachable from Root take part in Update
// and Traverse.
type Graph struct {
	nodes []node
	free  []uint32
	root  NodeID
}

func NewGraph() *Graph {
	g := &Graph{}
	g.root = g.Create("Root")
	return g
}

func (g *Graph) Root() NodeID {
	return g.root
}

// Create allocates a detached node with an identity local matrix.
func (g *Graph) Create(name string) NodeID {
	n := node{
		alive:   true,
		name:    name,
		parent:  -1,
		local:   math.Mat4Identity(),
		world:   math.Mat4Identity(),
		visible: true,
		scale:   math.Vec3One,
	}
	if len(g.free) > 0 {
		idx := g.free[len(g.free)-1]
		g.free = g.free[:len(g.free)-1]
		n.gen = g.nodes[idx].gen + 1
		g.nodes[idx] = n
		return NodeID{index: idx, gen: n.gen}
	}
	n.gen = 1
	g.nodes = append(g.nodes, n)
	return NodeID{index: uint32(len(g.nodes) - 1), gen: 1}
}

// Spawn creates a node and attaches it under parent.
func (g *Graph) Spawn(parent NodeID, name string) (NodeID, error) {
	if !g.Valid(parent) {
		return NodeID{}, fmt.Errorf("spawn %q: %w", name, ErrInvalidNode)
	}
	id := g.Create(name)
	if err := g.AddChild(parent, id); err != nil {
		return NodeID{}, err
	}
	return id, nil
}

func (g *Graph) Valid(id NodeID) bool {
	if id.gen == 0 || int(id.index) >= len(g.nodes) {
		return false
	}
	n := &g.nodes[id.index]
	return n.alive && n.gen == id.gen
}

func (g *Graph) get(id NodeID) (*node, error) {
	if !g.Valid(id) {
		return nil, ErrInvalidNode
	}
	return &g.nodes[id.index], nil
}

func (g *Graph) idOf(index uint32) NodeID {
	return NodeID{index: index, gen: g.nodes[index].gen}
}

// AddChild makes child the last child of parent, detaching it from any
// previous parent first.
func (g *Graph) AddChild(parent, child NodeID) error {
	p, err := g.get(parent)
	if err != nil {
		return fmt.Errorf("add child: parent: %w", err)
	}
	c, err := g.get(child)
	if err != nil {
		return fmt.Errorf("add child: child: %w", err)
	}
	if child == g.root {
		return fmt.Errorf("add child: %w", ErrRoot)
	}
	for cur := int32(parent.index); cur >= 0; cur = g.nodes[cur].parent {
		if uint32(cur) == child.index {
			return fmt.Errorf("add child %q under %q: %w", c.name, p.name, ErrCycle)
		}
	}

	g.detach(child.index)
	c.parent = int32(parent.index)
	p.children = append(p.children, child.index)
	return nil
}

// RemoveChild detaches child from parent. The child stays alive but is no
// longer visited by Update or Traverse until re-attached.
func (g *Graph) RemoveChild(parent, child NodeID) error {
	if _, err := g.get(parent); err != nil {
		return fmt.Errorf("remove child: parent: %w", err)
	}
	c, err := g.get(child)
	if err != nil {
		return fmt.Errorf("remove child: child: %w", err)
	}
	if c.parent != int32(parent.index) {
		return fmt.Errorf("remove child %q: %w", c.name, ErrNotChild)
	}
	g.detach(child.index)
	return nil
}

func (g *Graph) detach(index uint32) {
	c := &g.nodes[index]
	if c.parent < 0 {
		return
	}
	p := &g.nodes[c.parent]
	for i, ci := range p.children {
		if ci == index {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	c.parent = -1
}

// Destroy removes id and its whole subtree. Every ID in the subtree becomes
// invalid.
func (g *Graph) Destroy(id NodeID) error {
	if _, err := g.get(id); err != nil {
		return fmt.Errorf("destroy: %w", err)
	}
	if id == g.root {
		return fmt.Errorf("destroy: %w", ErrRoot)
	}
	g.detach(id.index)

	stack := []uint32{id.index}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &g.nodes[idx]
		stack = append(stack, n.children...)
		gen := n.gen
		g.nodes[idx] = node{gen: gen}
		g.free = append(g.free, idx)
	}
	return nil
}

// Len counts live nodes, including the root and detached nodes.
func (g *Graph) Len() int {
	return len(g.nodes) - len(g.free)
}

func (g *Graph) Name(id NodeID) string {
	if n, err := g.get(id); err == nil {
		return n.name
	}
	return ""
}

func (g *Graph) Parent(id NodeID) (NodeID, bool) {
	n, err := g.get(id)
	if err != nil || n.parent < 0 {
		return NodeID{}, false
	}
	return g.idOf(uint32(n.parent)), true
}

func (g *Graph) Children(id NodeID) []NodeID {
	n, err := g.get(id)
	if err != nil {
		return nil
	}
	out := make([]NodeID, len(n.children))
	for i, ci := range n.children {
		out[i] = g.idOf(ci)
	}
	return out
}

// Find returns the first node named name in depth-first order from the root.
func (g *Graph) Find(name string) (NodeID, bool) {
	var found NodeID
	g.walk(g.root.index, func(idx uint32) bool {
		if g.nodes[idx].name == name {
			found = g.idOf(idx)
			return false
		}
		return true
	})
	return found, !found.IsZero()
}

// walk visits idx and its descendants depth first. fn returning false stops
// the walk.
func (g *Graph) walk(idx uint32, fn func(uint32) bool) bool {
	if !fn(idx) {
		return false
	}
	for _, ci := range g.nodes[idx].children {
		if !g.walk(ci, fn) {
			return false
		}
	}
	return true
}

func (g *Graph) SetLocal(id NodeID, m math.Mat4) error {
	n, err := g.get(id)
	if err != nil {
		return fmt.Errorf("set local: %w", err)
	}
	n.local = m
	return nil
}

func (g *Graph) Local(id NodeID) math.Mat4 {
	if n, err := g.get(id); err == nil {
		return n.local
	}
	return math.Mat4Identity()
}

// World returns the matrix computed by the last Update.
func (g *Graph) World(id NodeID) math.Mat4 {
	if n, err := g.get(id); err == nil {
		return n.world
	}
	return math.Mat4Identity()
}

func (g *Graph) SetVisible(id NodeID, visible bool) error {
	n, err := g.get(id)
	if err != nil {
		return fmt.Errorf("set visible: %w", err)
	}
	n.visible = visible
	return nil
}

func (g *Graph) Visible(id NodeID) bool {
	n, err := g.get(id)
	return err == nil && n.visible
}

func (g *Graph) SetDrawable(id NodeID, d Drawable) error {
	n, err := g.get(id)
	if err != nil {
		return fmt.Errorf("set drawable: %w", err)
	}
	n.drawable = &d
	return nil
}

// Drawable returns the node's drawable for in-place edits, or nil.
func (g *Graph) Drawable(id NodeID) *Drawable {
	if n, err := g.get(id); err == nil {
		return n.drawable
	}
	return nil
}

// AttachBody makes id physics-driven. From the next Update its local matrix
// is rebuilt from the body and scale; any local set by SetLocal is ignored.
func (g *Graph) AttachBody(id NodeID, b physics.Body, scale math.Vec3) (*physics.Body, error) {
	n, err := g.get(id)
	if err != nil {
		return nil, fmt.Errorf("attach body: %w", err)
	}
	n.body = &b
	n.scale = scale
	return n.body, nil
}

func (g *Graph) Body(id NodeID) *physics.Body {
	if n, err := g.get(id); err == nil {
		return n.body
	}
	return nil
}

// StepPhysics advances every live body by dt, attached to the tree or not.
func (g *Graph) StepPhysics(dt float32) {
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.alive && n.body != nil {
			n.body.Step(dt)
		}
	}
}

// Update recomputes world matrices top-down from the root: the root's world
// is its local, every other node's is parentWorld * local.
func (g *Graph) Update() {
	g.update(g.root.index, nil)
}

func (g *Graph) update(idx uint32, parentWorld *math.Mat4) {
	n := &g.nodes[idx]
	if n.body != nil {
		n.local = bodyMatrix(n.body, n.scale)
	}
	if parentWorld != nil {
		n.world.Copy(*parentWorld).Multiply(n.local)
	} else {
		n.world.Copy(n.local)
	}
	world := n.world
	for _, ci := range n.children {
		g.update(ci, &world)
	}
}

// Traverse calls fn for every visible drawable node reachable from the root,
// parents before children. A hidden node hides its whole subtree. It reads
// world matrices from the last Update and does not modify the graph.
func (g *Graph) Traverse(fn func(id NodeID, world math.Mat4, d Drawable)) {
	g.traverse(g.root.index, fn)
}

func (g *Graph) traverse(idx uint32, fn func(NodeID, math.Mat4, Drawable)) {
	n := &g.nodes[idx]
	if !n.visible {
		return
	}
	if n.drawable != nil {
		fn(g.idOf(idx), n.world, *n.drawable)
	}
	for _, ci := range n.children {
		g.traverse(ci, fn)
	}
}
