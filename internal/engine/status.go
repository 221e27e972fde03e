package engine

// Status is the typed outcome of an economy operation. Every rejection
// carries a distinct tag so the collaborator layer can render an
// accurate message.
type Status string

const (
	StatusMaintained        Status = "MAINTAINED"
	StatusInsufficientFunds Status = "INSUFFICIENT_FUNDS"
	StatusNotFound          Status = "NOT_FOUND"

	StatusTransferred       Status = "TRANSFERRED"
	StatusInvalidAmount     Status = "INVALID_AMOUNT"
	StatusSelfTransfer      Status = "SELF_TRANSFER"
	StatusRecipientNotFound Status = "RECIPIENT_NOT_FOUND"
	StatusLimitExceeded     Status = "LIMIT_EXCEEDED"

	StatusClaimed        Status = "CLAIMED"
	StatusAlreadyClaimed Status = "ALREADY_CLAIMED"

	StatusRewarded   Status = "REWARDED"
	StatusOnCooldown Status = "ON_COOLDOWN"

	StatusRefreshed        Status = "REFRESHED"
	StatusAlreadyRefreshed Status = "ALREADY_REFRESHED_TODAY"

	StatusEnrolled        Status = "ENROLLED"
	StatusAlreadyEnrolled Status = "ALREADY_ENROLLED"

	StatusRevived Status = "REVIVED"
	StatusRemoved Status = "REMOVED"
)

// ClaimOutcome reports a daily claim: the streak after the claim and
// the amounts granted.
type ClaimOutcome struct {
	Status   Status
	Streak   int
	Points   int64
	Currency int64
}

// TickReport summarizes one decay tick.
type TickReport struct {
	Active  int
	Died    []string
	Warned  []string
	Persist error
}
