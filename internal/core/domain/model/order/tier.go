package order

import (
	"fmt"
	"strings"

	"kiosk/internal/pkg/errs"
)

// Tier is the priority class of an order. Lower rank is served first.
type Tier int

const (
	TierUnknown Tier = iota

	// Accessibility customers are always served first.
	Accessibility

	// Expecting covers pregnant customers.
	Expecting

	// Staff covers faculty and cafeteria staff.
	Staff

	// Standard is the default tier.
	Standard
)

// DefaultTier is assigned when intake does not specify one.
const DefaultTier = Standard

type tierInfo struct {
	name string
	code string
}

var tiers = map[Tier]tierInfo{
	Accessibility: {name: "Accessibility", code: "ACC"},
	Expecting:     {name: "Expecting", code: "EMB"},
	Staff:         {name: "Staff", code: "DOC"},
	Standard:      {name: "Standard", code: "STD"},
}

// AllTiers lists the valid tiers from highest to lowest priority.
func AllTiers() []Tier {
	return []Tier{Accessibility, Expecting, Staff, Standard}
}

// ParseTier accepts a tier name or its short code (ACC, EMB, DOC, STD), ignoring case.
// An empty string yields DefaultTier.
func ParseTier(s string) (Tier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultTier, nil
	}
	for tier, info := range tiers {
		if strings.EqualFold(info.name, s) || strings.EqualFold(info.code, s) {
			return tier, nil
		}
	}
	return TierUnknown, errs.NewValueIsInvalidErrorWithCause("tier", fmt.Errorf("%q is not a valid tier", s))
}

// Rank is the fixed sort rank: Accessibility=1 ... Standard=4.
func (t Tier) Rank() int {
	return int(t)
}

// Code is the short code shown on staff screens.
func (t Tier) Code() string {
	if info, ok := tiers[t]; ok {
		return info.code
	}
	return "UNK"
}

func (t Tier) String() string {
	if info, ok := tiers[t]; ok {
		return info.name
	}
	return "Unknown"
}

func (t Tier) Validate() error {
	if _, ok := tiers[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("tier", fmt.Errorf("%d is not a valid tier", t))
	}
	return nil
}
