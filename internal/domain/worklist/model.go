package worklist

import (
	"strconv"
	"strings"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

// Kind selects which embedded test column of a visit an operation targets.
type Kind string

const (
	KindLab     Kind = "lab"
	KindImaging Kind = "imaging"
)

// Column returns the visits column that stores records of this kind.
func (k Kind) Column() string {
	if k == KindImaging {
		return "imaging_tests"
	}
	return "lab_tests"
}

// TestRecord is one entry of the JSON arrays embedded in a visit row. The
// arrays are written by visit creation and updated in place by the worklist;
// there is no per-test table behind them.
type TestRecord struct {
	TestName    string  `json:"test_name"`
	TestType    string  `json:"test_type,omitempty"`
	BodyPart    string  `json:"body_part,omitempty"`
	Status      string  `json:"status"`
	Results     string  `json:"results"`
	Notes       string  `json:"notes"`
	NormalRange string  `json:"normal_range,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	Technician  string  `json:"technician,omitempty"`
	ReportDate  *string `json:"report_date"`
}

// Item is a flattened worklist row: one test record joined with its visit
// and patient. Its ID is synthetic, derived from position rather than a key
// of its own.
type Item struct {
	ID           string  `json:"id"`
	VisitID      int64   `json:"visit_id"`
	PatientID    int64   `json:"patient_id"`
	PatientName  string  `json:"patient_name"`
	PatientPhone *string `json:"patient_phone"`
	PatientEmail *string `json:"patient_email"`
	TestName     string  `json:"test_name"`
	TestType     string  `json:"test_type"`
	Status       string  `json:"status"`
	OrderDate    string  `json:"order_date"`
	Results      string  `json:"results"`
	Notes        string  `json:"notes"`
	NormalRange  string  `json:"normal_range"`
	Priority     string  `json:"priority"`
	Technician   string  `json:"technician"`
	ReportDate   *string `json:"report_date"`
}

// TestID addresses a single record inside a visit's embedded array.
type TestID struct {
	VisitID int64
	Kind    Kind
	Index   int
}

// String reassembles the wire form {visitID}_{kind}_{index}.
func (t TestID) String() string {
	return strconv.FormatInt(t.VisitID, 10) + "_" + string(t.Kind) + "_" + strconv.Itoa(t.Index)
}

// ParseTestID parses a synthetic worklist id. The id must have at least
// three underscore-separated parts, a numeric visit id, a known kind and a
// numeric index.
func ParseTestID(s string) (TestID, error) {
	parts := strings.Split(s, "_")
	if len(parts) < 3 {
		return TestID{}, apperr.Invalid("Invalid test ID format")
	}

	visitID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return TestID{}, apperr.Invalid("Invalid test ID format")
	}

	kind := Kind(parts[1])
	if kind != KindLab && kind != KindImaging {
		return TestID{}, apperr.Invalid("Invalid test ID format")
	}

	index, err := strconv.Atoi(parts[2])
	if err != nil || index < 0 {
		return TestID{}, apperr.Invalid("Invalid test ID format")
	}

	return TestID{VisitID: visitID, Kind: kind, Index: index}, nil
}
