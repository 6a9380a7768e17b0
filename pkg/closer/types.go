package closer

// Label is one label attached to an entity.
type Label struct {
	Name string `json:"name"`
}

// Details is the state of an entity as fetched before closing it.
// Labels are always the complete set, never a partial page.
type Details struct {
	Number int
	Title  string
	Labels []Label
	URL    string
	State  string // "open" or "closed"
	NodeID string // GraphQL node ID, when the backend has one
}

// LabelNames returns the names of d's labels.
func (d *Details) LabelNames() []string {
	names := make([]string, 0, len(d.Labels))
	for _, l := range d.Labels {
		names = append(names, l.Name)
	}
	return names
}

// Comment identifies a posted comment.
type Comment struct {
	ID  string
	URL string
}

// Closed is returned by a successful close mutation.
type Closed struct {
	Number int
	URL    string
	Title  string
}

// Resolved is the outcome of number resolution. Message is set when
// Success is false.
type Resolved struct {
	Success bool
	Number  int
	Message string
}

// Result is the outcome of one handler invocation. Failures are reported
// here and never as Go errors or panics.
type Result struct {
	Success       bool   `json:"success"`
	Number        int    `json:"number,omitempty"`
	URL           string `json:"url,omitempty"`
	Title         string `json:"title,omitempty"`
	AlreadyClosed bool   `json:"already_closed,omitempty"`
	Skipped       bool   `json:"skipped,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Failed reports whether r counts as a failure. Skipped results do not.
func (r Result) Failed() bool {
	return !r.Success && !r.Skipped
}
