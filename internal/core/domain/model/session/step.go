package session

import (
	"fmt"

	"mealbot/internal/pkg/errs"
)

// Step represents where in the ordering conversation a buyer is.
type Step int

const (
	// StepUnknown represents an invalid or undefined step.
	StepUnknown Step = iota

	// Welcome is the initial step: the buyer has not started an order.
	Welcome

	// SelectingFood means the menu was shown and a meal pick is expected.
	SelectingFood

	// ConfirmOrder means a meal and location were captured and the buyer is
	// reviewing the order summary.
	ConfirmOrder

	// Payment means the order was created and payment is awaited.
	Payment

	// OrderComplete means payment was confirmed; the next message restarts
	// the flow.
	OrderComplete
)

func getStepStrings() map[Step]string {
	return map[Step]string{
		StepUnknown:   "unknown",
		Welcome:       "welcome",
		SelectingFood: "selecting_food",
		ConfirmOrder:  "confirm_order",
		Payment:       "payment",
		OrderComplete: "order_complete",
	}
}

// Validate checks if the Step value is one of the defined flow steps.
func (s Step) Validate() error {
	if s < Welcome || s > OrderComplete {
		return errs.NewValueIsInvalidErrorWithCause("step",
			fmt.Errorf("%d is not a valid session step", s))
	}
	return nil
}

// String returns the persisted name of the step, e.g. "selecting_food".
func (s Step) String() string {
	if str, ok := getStepStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StepFromString parses a persisted step name.
func StepFromString(value string) (Step, error) {
	for step, str := range getStepStrings() {
		if str == value && step != StepUnknown {
			return step, nil
		}
	}
	return StepUnknown, errs.NewValueIsInvalidErrorWithCause("step",
		fmt.Errorf("%q is not a valid session step", value))
}
