package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	PredicateStatus2xx    = "status_2xx"
	PredicateStatus200    = "status_200"
	PredicateBodyOK       = "body_ok"
	PredicateBodyExact    = "body_exact"
	PredicateCoffeeStatus = "coffee_status"
)

// SuccessPredicate decides whether a received response counts as a
// successful attempt. Transport failures never reach a predicate.
type SuccessPredicate struct {
	Name  string
	check func(status int, body string) Outcome
}

func (p SuccessPredicate) Evaluate(status int, body string) Outcome {
	if p.check == nil {
		return Status2xx().check(status, body)
	}
	return p.check(status, body)
}

func (p SuccessPredicate) String() string {
	if p.Name == "" {
		return PredicateStatus2xx
	}
	return p.Name
}

func (p SuccessPredicate) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func Status2xx() SuccessPredicate {
	return SuccessPredicate{
		Name: PredicateStatus2xx,
		check: func(status int, _ string) Outcome {
			if status >= 200 && status < 300 {
				return OutcomeSuccess
			}
			return OutcomeBadStatus
		},
	}
}

func Status200() SuccessPredicate {
	return SuccessPredicate{
		Name: PredicateStatus200,
		check: func(status int, _ string) Outcome {
			if status == 200 {
				return OutcomeSuccess
			}
			return OutcomeBadStatus
		},
	}
}

// BodyEquals requires status 200 and a body that matches want exactly.
// The webhook receiver answers a bare "OK".
func BodyEquals(want string) SuccessPredicate {
	name := PredicateBodyExact + ":" + want
	if want == "OK" {
		name = PredicateBodyOK
	}
	return SuccessPredicate{
		Name: name,
		check: func(status int, body string) Outcome {
			if status != 200 {
				return OutcomeBadStatus
			}
			if body != want {
				return OutcomeBodyMismatch
			}
			return OutcomeSuccess
		},
	}
}

func CoffeeStatusBody() SuccessPredicate {
	return SuccessPredicate{
		Name: PredicateCoffeeStatus,
		check: func(status int, body string) Outcome {
			if status != 200 {
				return OutcomeBadStatus
			}
			if _, err := DecodeCoffeeStatus([]byte(body)); err != nil {
				return OutcomeBodyMismatch
			}
			return OutcomeSuccess
		},
	}
}

// ParsePredicate resolves a configured predicate name. An empty name means
// status_2xx. body_exact takes its expected body after a colon.
func ParsePredicate(expr string) (SuccessPredicate, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(expr), ":")

	switch strings.ToLower(name) {
	case "", PredicateStatus2xx:
		return Status2xx(), nil
	case PredicateStatus200:
		return Status200(), nil
	case PredicateBodyOK:
		return BodyEquals("OK"), nil
	case PredicateBodyExact:
		if !hasArg {
			return SuccessPredicate{}, fmt.Errorf("%w: %s needs an expected body", ErrUnknownPredicate, PredicateBodyExact)
		}
		return BodyEquals(arg), nil
	case PredicateCoffeeStatus:
		return CoffeeStatusBody(), nil
	default:
		return SuccessPredicate{}, fmt.Errorf("%w: %q", ErrUnknownPredicate, expr)
	}
}
