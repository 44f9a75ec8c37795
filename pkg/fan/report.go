package fan

import "fmt"

// Default tolerances, in percentage points.
const (
	DefaultSumTolerance  = 0.01
	DefaultAreaTolerance = 0.1
)

// IssueKind distinguishes data problems from tessellation defects.
type IssueKind int

const (
	// IssuePercentSum means the segment percents do not add up to 100.
	// It is a normalization problem in the input.
	IssuePercentSum IssueKind = iota + 1

	// IssueAreaMismatch means a polygon's area fraction differs from its
	// percent by more than the tolerance. It indicates a tessellation bug.
	IssueAreaMismatch
)

func (k IssueKind) String() string {
	switch k {
	case IssuePercentSum:
		return "percent-sum"
	case IssueAreaMismatch:
		return "area-mismatch"
	default:
		return fmt.Sprintf("IssueKind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k IssueKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *IssueKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "percent-sum":
		*k = IssuePercentSum
	case "area-mismatch":
		*k = IssueAreaMismatch
	default:
		return fmt.Errorf("unknown issue kind %q", b)
	}
	return nil
}

// Issue is a single diagnostic. Expected and Actual are percentage points.
// Segment is -1 for issues that concern the whole layer.
type Issue struct {
	Kind     IssueKind `json:"kind"`
	Segment  int       `json:"segment"`
	Expected float64   `json:"expected"`
	Actual   float64   `json:"actual"`
}

func (i Issue) String() string {
	if i.Segment < 0 {
		return fmt.Sprintf("%s: expected %.4f, got %.4f", i.Kind, i.Expected, i.Actual)
	}
	return fmt.Sprintf("%s: segment %d: expected %.4f, got %.4f", i.Kind, i.Segment, i.Expected, i.Actual)
}

// Report is the diagnostic result returned alongside a tessellation.
type Report struct {
	Issues []Issue `json:"issues,omitempty"`
}

// OK reports whether no issues were found.
func (r Report) OK() bool { return len(r.Issues) == 0 }

// Has reports whether the report contains an issue of the given kind.
func (r Report) Has(kind IssueKind) bool {
	for _, i := range r.Issues {
		if i.Kind == kind {
			return true
		}
	}
	return false
}

func (r *Report) add(i Issue) { r.Issues = append(r.Issues, i) }
