package hermes

import "strconv"

const (
	SubjectAll             = "matrix.>"
	SubjectReset           = "matrix.reset"
	SubjectAnalysisUpdated = "matrix.analysis.updated"

	StreamName   = "MATRIX_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func criterionSubject(id int, verb string) string {
	return "matrix.criterion." + strconv.Itoa(id) + "." + verb
}

func SubjectCriterionAdded(id int) string   { return criterionSubject(id, "added") }
func SubjectCriterionUpdated(id int) string { return criterionSubject(id, "updated") }
func SubjectCriterionRemoved(id int) string { return criterionSubject(id, "removed") }
