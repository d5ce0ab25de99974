package types

// Diff holds the rendering of a file before and after an operation.
// Before is empty when the file did not exist or was empty.
type Diff struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Result is what every provisioning operation reports back.
type Result struct {
	Changed bool   `json:"changed"`
	Msg     string `json:"msg"`
	Diff    *Diff  `json:"diff,omitempty"`
}

// NewResult picks the changed or unchanged message.
func NewResult(changed bool, changedMsg, unchangedMsg string, diff *Diff) *Result {
	msg := unchangedMsg
	if changed {
		msg = changedMsg
	}
	return &Result{Changed: changed, Msg: msg, Diff: diff}
}
