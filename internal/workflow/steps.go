package workflow

import "github.com/dkacademy/registration-api/internal/models"

// Step identifies one logical section of the enrollment form.
type Step int

// Form steps in visual order.
const (
	StepDetails Step = iota
	StepParents
	StepOffice
	StepDeclaration
)

// String returns the section label shown in the step indicator.
func (s Step) String() string {
	switch s {
	case StepDetails:
		return "Details"
	case StepParents:
		return "Parents"
	case StepOffice:
		return "Office"
	case StepDeclaration:
		return "Declaration"
	default:
		return "Unknown"
	}
}

// Direction of navigation through the form.
type Direction int

// Navigation directions.
const (
	Forward Direction = iota
	Backward
)

// NextVisibleStep computes the adjacent step for a registration type in
// the given direction. Member registrations have no guardian section,
// so Parents is skipped both ways. The result clamps at the first and
// last step.
func NextVisibleStep(current Step, t models.RegistrationType, dir Direction) Step {
	next := current
	switch dir {
	case Forward:
		if next < StepDeclaration {
			next++
		}
	case Backward:
		if next > StepDetails {
			next--
		}
	}
	if next == StepParents && t != models.RegistrationTypeStudent {
		switch dir {
		case Forward:
			next = StepOffice
		case Backward:
			next = StepDetails
		}
	}
	return next
}
