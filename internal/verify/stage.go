package verify

// Stage names the steps of one verification call. Stages only advance;
// every non-terminal transition absorbs local failures, and the last stage
// reached is reported when a call fails.
type Stage string

const (
	StageInit              Stage = "INIT"
	StageContainerResolved Stage = "CONTAINER_RESOLVED"
	StageFormFilled        Stage = "FORM_FILLED"
	StageSubmitted         Stage = "SUBMITTED"
	StageResultMatched     Stage = "RESULT_MATCHED"
	StageDetailExtracted   Stage = "DETAIL_EXTRACTED"
)

// Outcome is the terminal state of one verification call. DONE and
// NOT_FOUND are both normal returns; FAILED resolves to an empty list plus
// a logged cause, never a raised fault.
type Outcome string

const (
	OutcomeDone     Outcome = "DONE"
	OutcomeNotFound Outcome = "NOT_FOUND"
	OutcomeFailed   Outcome = "FAILED"
)
