package statemachine

import (
	"fmt"
	"strings"

	"oh-crepe-api/models"
)

// lifecycle is the forward path an order normally walks through
var lifecycle = []models.OrderStatus{
	models.StatusPending,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusOutForDelivery,
	models.StatusDelivered,
}

// position of each lifecycle status, cancelled is off the path
var position = func() map[models.OrderStatus]int {
	m := make(map[models.OrderStatus]int, len(lifecycle))
	for i, s := range lifecycle {
		m[s] = i
	}
	return m
}()

// Change classifies a status update relative to the lifecycle.
type Change string

const (
	ChangeForward Change = "forward"
	ChangeSkip    Change = "skip"
	ChangeRegress Change = "regress"
	ChangeCancel  Change = "cancel"
	ChangeRepeat  Change = "repeat"
	ChangeReopen  Change = "reopen"
)

// AllStatuses returns every status an order may hold, in display order.
func AllStatuses() []models.OrderStatus {
	out := make([]models.OrderStatus, 0, len(lifecycle)+1)
	out = append(out, lifecycle...)
	return append(out, models.StatusCancelled)
}

func IsValid(status models.OrderStatus) bool {
	if status == models.StatusCancelled {
		return true
	}
	_, ok := position[status]
	return ok
}

func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusDelivered || status == models.StatusCancelled
}

// IsActive reports whether an order still needs work from staff.
func IsActive(status models.OrderStatus) bool {
	return IsValid(status) && !IsTerminal(status)
}

// NextInLifecycle returns the status that normally follows status, or false
// for terminal states.
func NextInLifecycle(status models.OrderStatus) (models.OrderStatus, bool) {
	i, ok := position[status]
	if !ok || i == len(lifecycle)-1 {
		return "", false
	}
	return lifecycle[i+1], true
}

// Describe classifies the move from → to. Both values must be valid.
func Describe(from, to models.OrderStatus) Change {
	switch {
	case from == to:
		return ChangeRepeat
	case to == models.StatusCancelled:
		return ChangeCancel
	case from == models.StatusCancelled:
		return ChangeReopen
	}
	d := position[to] - position[from]
	switch {
	case d == 1:
		return ChangeForward
	case d > 1:
		return ChangeSkip
	default:
		return ChangeRegress
	}
}

// CanTransition checks whether an order in from may be moved to to.
//
// Staff may set any known status from any state, including the current one:
// skipping ahead, stepping back and reopening a cancelled order are all
// accepted. Only unknown values are rejected.
func CanTransition(from, to models.OrderStatus) error {
	if !IsValid(to) {
		return fmt.Errorf("invalid status %q: must be one of %s", to, describe(AllStatuses()))
	}
	if !IsValid(from) {
		return fmt.Errorf("order is in unknown status %q", from)
	}
	return nil
}

func describe(statuses []models.OrderStatus) string {
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// Step documents one edge of the normal lifecycle.
type Step struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
}

// MachineInfo is the public description of the order lifecycle.
type MachineInfo struct {
	Statuses       []models.OrderStatus `json:"statuses"`
	Lifecycle      []Step               `json:"lifecycle"`
	CancellableIn  []models.OrderStatus `json:"cancellable_in"`
	TerminalStates []models.OrderStatus `json:"terminal_states"`
	Enforcement    string               `json:"enforcement"`
	Actors         []models.UserRole    `json:"actors"`
}

// Info returns the full state machine for documentation
func Info() MachineInfo {
	steps := make([]Step, 0, len(lifecycle)-1)
	for i := 0; i < len(lifecycle)-1; i++ {
		steps = append(steps, Step{From: lifecycle[i], To: lifecycle[i+1]})
	}
	return MachineInfo{
		Statuses:       AllStatuses(),
		Lifecycle:      steps,
		CancellableIn:  lifecycle[:len(lifecycle)-1],
		TerminalStates: []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		Enforcement:    "any listed status may be set from any state",
		Actors:         []models.UserRole{models.RoleStaff, models.RoleAdmin},
	}
}
