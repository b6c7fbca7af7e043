package models

// Outcome is the terminal result of triaging a webhook item.
// Each suppression keeps its own value so logs can tell them apart.
type Outcome string

const (
	OutcomeNotify                 Outcome = "notify"
	OutcomeSuppressDuplicate      Outcome = "suppress_duplicate"
	OutcomeSuppressBulkSeason     Outcome = "suppress_bulk_season"
	OutcomeSuppressNoPremiereDate Outcome = "suppress_no_premiere_date"
	OutcomeSuppressStalePremiere  Outcome = "suppress_stale_premiere"
	OutcomeSuppressUnknownKind    Outcome = "suppress_unknown_kind"
)

// Notify reports whether the outcome calls for sending a notification
func (o Outcome) Notify() bool {
	return o == OutcomeNotify
}

// Decision pairs an outcome with the item key it was made for
type Decision struct {
	Outcome Outcome `json:"outcome"`
	Key     string  `json:"key"`
	Reason  string  `json:"reason,omitempty"`
}

// Result is what the webhook handler reports back to its caller
type Result struct {
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
}
