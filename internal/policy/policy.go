package policy

import "strconv"

// Policy keys. Stored as strings, parsed on read.
const (
	KeyFreeCancellationHours        = "free_cancellation_hours"
	KeyCancellationCutoffHours      = "cancellation_cutoff_hours"
	KeyMentorCancellationCutoff     = "mentor_cancellation_cutoff_hours"
	KeyPartialRefundPercentage      = "partial_refund_percentage"
	KeyLateCancellationRefund       = "late_cancellation_refund_percentage"
	KeyRescheduleRequestExpiryHours = "reschedule_request_expiry_hours"
	KeyMaxCounterProposals          = "max_counter_proposals"
)

// Defaults apply whenever a key is absent from the store or fails to parse.
var Defaults = map[string]string{
	KeyFreeCancellationHours:        "48",
	KeyCancellationCutoffHours:      "24",
	KeyMentorCancellationCutoff:     "12",
	KeyPartialRefundPercentage:      "50",
	KeyLateCancellationRefund:       "0",
	KeyRescheduleRequestExpiryHours: "48",
	KeyMaxCounterProposals:          "2",
}

// Snapshot is the resolved set of policy values in effect at the moment a
// decision was made. It is serialized verbatim into the audit log so the
// decision stays reproducible after the policy changes.
type Snapshot struct {
	FreeCancellationHours         int `json:"free_cancellation_hours"`
	CancellationCutoffHours       int `json:"cancellation_cutoff_hours"`
	MentorCancellationCutoffHours int `json:"mentor_cancellation_cutoff_hours"`
	PartialRefundPercentage       int `json:"partial_refund_percentage"`
	LateCancellationRefund        int `json:"late_cancellation_refund_percentage"`
	RescheduleRequestExpiryHours  int `json:"reschedule_request_expiry_hours"`
	MaxCounterProposals           int `json:"max_counter_proposals"`
}

// ParseSnapshot resolves raw key/value pairs into a typed Snapshot,
// falling back per key to Defaults on absence or parse failure.
func ParseSnapshot(values map[string]string) Snapshot {
	return Snapshot{
		FreeCancellationHours:         intValue(values, KeyFreeCancellationHours),
		CancellationCutoffHours:       intValue(values, KeyCancellationCutoffHours),
		MentorCancellationCutoffHours: intValue(values, KeyMentorCancellationCutoff),
		PartialRefundPercentage:       intValue(values, KeyPartialRefundPercentage),
		LateCancellationRefund:        intValue(values, KeyLateCancellationRefund),
		RescheduleRequestExpiryHours:  intValue(values, KeyRescheduleRequestExpiryHours),
		MaxCounterProposals:           intValue(values, KeyMaxCounterProposals),
	}
}

func intValue(values map[string]string, key string) int {
	raw, ok := values[key]
	if !ok || raw == "" {
		raw = Defaults[key]
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		n, _ = strconv.Atoi(Defaults[key])
	}
	return n
}
