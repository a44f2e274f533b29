package statemachine

import (
	"dog-walk-service/errs"
	"dog-walk-service/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.WalkRequestStatus
	To    models.WalkRequestStatus
	Actor string // "owner", "walker", "system"
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Owner accepts a walker's application
	{From: models.RequestOpen, To: models.RequestAccepted, Actor: "owner"},
	// Owner confirms the walk took place
	{From: models.RequestAccepted, To: models.RequestCompleted, Actor: "owner"},
	// The system may complete once the scheduled window has elapsed
	{From: models.RequestAccepted, To: models.RequestCompleted, Actor: "system"},
	// Owner can cancel before or after acceptance, never after completion
	{From: models.RequestOpen, To: models.RequestCancelled, Actor: "owner"},
	{From: models.RequestAccepted, To: models.RequestCancelled, Actor: "owner"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.WalkRequestStatus
	To    models.WalkRequestStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.WalkRequestStatus) []models.WalkRequestStatus {
	var nexts []models.WalkRequestStatus
	seen := map[models.WalkRequestStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move a request from one state to another
func CanTransition(from, to models.WalkRequestStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errs.New(errs.InvalidStateTransition,
		"invalid transition: "+string(from)+" to "+string(to)+
			" is not allowed for actor '"+actor+"'. "+
			"Valid transitions from "+string(from)+" are: "+describeValidFrom(from),
	)
}

func describeValidFrom(status models.WalkRequestStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

// applicationTransitions mirrors the request table for WalkApplication rows.
// Both outcomes are owner decisions: accepting one application rejects the rest.
var applicationTransitions = map[[2]models.ApplicationStatus]bool{
	{models.ApplicationApplied, models.ApplicationAccepted}: true,
	{models.ApplicationApplied, models.ApplicationRejected}: true,
}

// CanTransitionApplication checks a WalkApplication state change
func CanTransitionApplication(from, to models.ApplicationStatus) error {
	if applicationTransitions[[2]models.ApplicationStatus{from, to}] {
		return nil
	}
	return errs.New(errs.InvalidStateTransition,
		"invalid application transition: "+string(from)+" to "+string(to))
}
