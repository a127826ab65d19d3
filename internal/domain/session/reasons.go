package session

// Role-specific cancellation reason taxonomies. The code travels over the
// API; the label is what lands in cancellation_reason and notifications.

var mentorReasons = map[string]string{
	"emergency":         "Personal emergency",
	"illness":           "Illness",
	"schedule_conflict": "Schedule conflict",
	"technical_issue":   "Technical issue",
	"double_booking":    "Double booking",
	"other":             "Other",
}

var menteeReasons = map[string]string{
	"schedule_conflict":    "Schedule conflict",
	"found_another_mentor": "Found another mentor",
	"no_longer_needed":     "No longer needed",
	"financial_reason":     "Financial reason",
	"technical_issue":      "Technical issue",
	"other":                "Other",
}

// ReasonCancelledViaReschedule distinguishes the mentee escape hatch in a
// reschedule negotiation from an ordinary cancellation.
const ReasonCancelledViaReschedule = "reschedule_response_cancel"

// ReasonLabel resolves a reason code against the actor's taxonomy.
func ReasonLabel(role Role, code string) (string, bool) {
	var taxonomy map[string]string
	if role == RoleMentor {
		taxonomy = mentorReasons
	} else {
		taxonomy = menteeReasons
	}
	label, ok := taxonomy[code]
	return label, ok
}

// FormatReason concatenates the taxonomy label with free-text details.
func FormatReason(label, details string) string {
	if details == "" {
		return label
	}
	return label + ": " + details
}
