package search

// Context owns per-node annotation objects (DMDFS distances, HybridDFS
// stage metadata, …) keyed by node ID, independently of whatever Space is
// using them. The driver calls Remove whenever a node is dropped —
// discarded as Empty, replaced by its children after a split, or reported
// as a solution — so annotations never outlive the node they describe.
type Context struct {
	annotations map[int]interface{}
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{annotations: make(map[int]interface{})}
}

// Set stores ann for nodeID, replacing any previous value.
func (c *Context) Set(nodeID int, ann interface{}) {
	c.annotations[nodeID] = ann
}

// Get returns the annotation stored for nodeID, if any.
func (c *Context) Get(nodeID int) (interface{}, bool) {
	v, ok := c.annotations[nodeID]
	return v, ok
}

// Remove purges nodeID's annotation. Safe to call even if none was set.
func (c *Context) Remove(nodeID int) {
	delete(c.annotations, nodeID)
}

// Len reports how many annotations are currently live, mostly useful for
// tests asserting that Remove is actually being called by the driver.
func (c *Context) Len() int { return len(c.annotations) }
