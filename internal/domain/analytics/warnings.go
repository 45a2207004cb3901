package analytics

import "fmt"

const KindDataInconsistency = "DataInconsistency"

// Warning records a row that was left out of a computation.
type Warning struct {
	Kind       string `json:"kind"`
	Entity     string `json:"entity"`
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employeeId"`
	Message    string `json:"message"`
}

func (w Warning) String() string {
	return w.Kind + ": " + w.Message
}

type Warnings []Warning

func (w *Warnings) add(warning Warning) {
	*w = append(*w, warning)
}

func danglingReference(entity string, id, employeeID int64) Warning {
	return Warning{
		Kind:       KindDataInconsistency,
		Entity:     entity,
		ID:         id,
		EmployeeID: employeeID,
		Message:    fmt.Sprintf("%s %d references unknown employee %d", entity, id, employeeID),
	}
}
