// SPDX-License-Identifier: MIT
// Package: fuzzar/rulegraph
//
// infer.go — breadth-first forward chaining over the rule graph.
//
// Starting from a set of fact items, a rule fires once every one of its
// antecedent items is known; its consequent items then become known one
// round deeper. Items are processed in non-decreasing round order, so a rule
// fires exactly when its deepest antecedent is dequeued.

package rulegraph

import "fmt"

// chainItem pairs an item ID with its round.
type chainItem struct {
	id    string
	depth int
}

// chainer encapsulates mutable inference state.
type chainer struct {
	graph     *Graph
	opts      InferOptions
	queue     []chainItem
	remaining map[string]int
	res       *Inference
}

// Infer runs forward chaining on g from facts.
//
// Errors: ErrOptionViolation for bad options, ErrNodeNotFound or ErrNotItem
// for bad facts, the context error on cancellation, or a wrapped OnFire error.
//
// Complexity: O(V + E) graph lookups plus sorting of neighbor lists.
func Infer(g *Graph, facts []string, opts ...InferOption) (*Inference, error) {
	o := DefaultInferOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	c := &chainer{
		graph:     g,
		opts:      o,
		remaining: make(map[string]int),
		res: &Inference{
			Depth:       make(map[string]int),
			Parent:      make(map[string]string),
			antecedents: make(map[string][]string),
		},
	}
	for _, f := range facts {
		n, err := g.Node(f)
		if err != nil {
			return nil, fmt.Errorf("Infer: %w", err)
		}
		if n.Type != TypeItem {
			return nil, fmt.Errorf("Infer: %q is a %s: %w", f, n.Type, ErrNotItem)
		}
		if !c.res.Derived(f) {
			c.learn(f, 0, "")
		}
	}

	return c.res, c.loop()
}

// learn records item as known at depth and queues it.
func (c *chainer) learn(id string, depth int, rule string) {
	c.res.Order = append(c.res.Order, id)
	c.res.Depth[id] = depth
	if rule != "" {
		c.res.Parent[id] = rule
	}
	c.queue = append(c.queue, chainItem{id: id, depth: depth})
}

func (c *chainer) loop() error {
	for len(c.queue) > 0 {
		select {
		case <-c.opts.Ctx.Done():
			return c.opts.Ctx.Err()
		default:
		}

		item := c.queue[0]
		c.queue = c.queue[1:]
		if err := c.advance(item); err != nil {
			return err
		}
	}
	return nil
}

// advance decrements the pending count of every rule item feeds and fires
// the ones that become complete.
func (c *chainer) advance(item chainItem) error {
	rules, err := c.graph.Successors(item.id)
	if err != nil {
		return err
	}
	for _, rule := range rules {
		left, seen := c.remaining[rule]
		if !seen {
			ante, err := c.graph.Predecessors(rule)
			if err != nil {
				return err
			}
			c.res.antecedents[rule] = ante
			left = len(ante)
		}
		left--
		c.remaining[rule] = left
		if left == 0 {
			if err := c.fire(rule, item.depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *chainer) fire(rule string, depth int) error {
	if c.opts.MaxDepth > 0 && depth > c.opts.MaxDepth {
		return nil
	}
	n, err := c.graph.Node(rule)
	if err != nil {
		return err
	}
	if n.Stats != nil && n.Stats.CertaintyFactor < c.opts.MinCertainty {
		return nil
	}

	c.res.Fired = append(c.res.Fired, rule)
	if err := c.opts.OnFire(rule, depth); err != nil {
		return fmt.Errorf("Infer: OnFire error at %q: %w", rule, err)
	}

	cons, err := c.graph.Successors(rule)
	if err != nil {
		return err
	}
	for _, it := range cons {
		if !c.res.Derived(it) {
			c.learn(it, depth, rule)
		}
	}
	return nil
}
