package contrast

import "reflect"

// ItemError records an element that could not be evaluated.
type ItemError struct {
	Label string `json:"label"`
	Err   error  `json:"-"`
}

func (e ItemError) Error() string {
	return e.Label + ": " + e.Err.Error()
}

// Summary holds the counts of a Report.
type Summary struct {
	Total      int `json:"total"`
	PassingAA  int `json:"passingAA"`
	PassingAAA int `json:"passingAAA"`
	Errors     int `json:"errors"`
}

// Report is the result of one Audit call. Results keep the order in which
// the nodes were given.
type Report struct {
	Results  []Compliance `json:"results"`
	Failures []ItemError  `json:"-"`
	Summary  Summary      `json:"summary"`
}

// Audit evaluates every node once, in order. A node that cannot be
// evaluated is recorded in Failures and the batch continues. Nil nodes,
// including nil pointers, are skipped.
func Audit(nodes []TextNode) Report {
	var r Report
	seen := make(map[TextNode]struct{}, len(nodes))

	for _, n := range nodes {
		if isNilNode(n) {
			continue
		}
		if reflect.TypeOf(n).Comparable() {
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
		}

		c, err := EvaluateElement(n)
		if err != nil {
			r.Failures = append(r.Failures, ItemError{Label: n.Label(), Err: err})
			r.Summary.Errors++
			continue
		}
		r.add(c)
	}
	return r
}

func (r *Report) add(c Compliance) {
	r.Results = append(r.Results, c)
	r.Summary.Total++
	if c.PassesAA {
		r.Summary.PassingAA++
	}
	if c.PassesAAA {
		r.Summary.PassingAAA++
	}
}

// Below returns the results that do not reach level l, in report order.
func (r Report) Below(l Level) []Compliance {
	var out []Compliance
	for _, c := range r.Results {
		if !c.Meets(l) {
			out = append(out, c)
		}
	}
	return out
}
