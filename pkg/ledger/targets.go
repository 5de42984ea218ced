package ledger

import (
	"fmt"
	"math"
	"strings"
)

// MaxTargets bounds the distinct leads in one allocation call. A DynamoDB
// transaction holds at most 100 items and each lead costs one besides the donation.
const MaxTargets = 99

// Target is a requested allocation of amount to a lead.
type Target struct {
	LeadId string `json:"leadId"`
	Amount int64  `json:"amount"`
}

// MergeTargets validates targets and sums duplicate lead ids, keeping first-seen order.
func MergeTargets(targets []Target) ([]Target, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: no allocation targets", ErrInvalidArgument)
	}

	merged := make([]Target, 0, len(targets))
	index := make(map[string]int, len(targets))
	for i, t := range targets {
		leadID := strings.TrimSpace(t.LeadId)
		if leadID == "" {
			return nil, fmt.Errorf("%w: target %d has no lead id", ErrInvalidArgument, i)
		}
		if t.Amount <= 0 {
			return nil, fmt.Errorf("%w: target %d for lead %s has non-positive amount %d", ErrInvalidArgument, i, leadID, t.Amount)
		}

		if j, ok := index[leadID]; ok {
			if merged[j].Amount > math.MaxInt64-t.Amount {
				return nil, fmt.Errorf("%w: amount for lead %s overflows", ErrInvalidArgument, leadID)
			}
			merged[j].Amount += t.Amount
			continue
		}
		index[leadID] = len(merged)
		merged = append(merged, Target{LeadId: leadID, Amount: t.Amount})
	}

	if len(merged) > MaxTargets {
		return nil, fmt.Errorf("%w: %d leads in one allocation, at most %d allowed", ErrInvalidArgument, len(merged), MaxTargets)
	}

	return merged, nil
}

// Sum returns the total amount of the targets, or an error if it overflows.
func Sum(targets []Target) (int64, error) {
	var total int64
	for _, t := range targets {
		if total > math.MaxInt64-t.Amount {
			return 0, fmt.Errorf("%w: allocation total overflows", ErrInvalidArgument)
		}
		total += t.Amount
	}
	return total, nil
}
