package agent

// Decision is the structured payload extracted from one model reply.
// Thought is nil when the reply carried none or extraction failed.
type Decision struct {
	Thought *string
	Actions []string
}

// Invocation is one registry-validated action, ready for the automation to
// dispatch on its numeric id.
type Invocation struct {
	FunctionNumber int      `json:"function_number"`
	Arguments      []string `json:"arguments"`
}

// HistoryEntry is the log record the caller appends to its running history.
// Actions holds the cleaned raw action strings, not numeric records, so the
// next prompt reads naturally.
type HistoryEntry struct {
	Thought *string  `json:"thought"`
	Actions []string `json:"actions"`
}

// Outcome bundles the three outputs of one decision request.
type Outcome struct {
	Invocations []Invocation
	History     []HistoryEntry
	Thought     *string
}
