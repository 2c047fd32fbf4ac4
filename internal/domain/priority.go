package domain

import (
	"math"
	"time"
)

// Weights for the priority heuristic. Resolved and verified tickets
// always score zero; the age term is capped so very old tickets do not
// grow without bound.
const (
	urgencyHighPoints   = 50
	urgencyMediumPoints = 30
	urgencyLowPoints    = 10

	impactBlockingPoints = 40
	impactAnnoyingPoints = 20

	occupiedPoints = 30

	agePointsPerDay = 5
	agePointsCap    = 30
)

// PriorityScore computes the urgency ranking for a ticket at the given
// instant. It is a pure function of ticket state: callers recompute it
// on load and after every mutation rather than trusting a stored value.
// Unrecognized urgency or impact values contribute zero.
func PriorityScore(t *Ticket, now time.Time) int {
	if t.Status == TicketStatusResolved || t.Status == TicketStatusVerified {
		return 0
	}

	score := 0.0

	switch t.Urgency {
	case UrgencyHigh:
		score += urgencyHighPoints
	case UrgencyMedium:
		score += urgencyMediumPoints
	case UrgencyLow:
		score += urgencyLowPoints
	}

	switch t.Impact {
	case ImpactBlocking:
		score += impactBlockingPoints
	case ImpactAnnoying:
		score += impactAnnoyingPoints
	}

	if t.IsOccupied {
		score += occupiedPoints
	}

	daysOpen := now.Sub(t.CreatedAt).Hours() / 24
	score += math.Min(daysOpen*agePointsPerDay, agePointsCap)

	return int(math.Round(score))
}
