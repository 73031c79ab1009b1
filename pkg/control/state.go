package control

// Status is the validation status of a control.
type Status string

const (
	StatusValid    Status = "VALID"
	StatusInvalid  Status = "INVALID"
	StatusPending  Status = "PENDING"
	StatusDisabled Status = "DISABLED"
)

// UpdateOn selects the event that commits user input to a control's value.
type UpdateOn string

const (
	UpdateOnChange UpdateOn = "change"
	UpdateOnBlur   UpdateOn = "blur"
	UpdateOnSubmit UpdateOn = "submit"
)

// State is an immutable snapshot of a control.
type State struct {
	Name     string
	Path     string
	Status   Status
	Value    any
	Errors   Errors
	Touched  bool
	Dirty    bool
	UpdateOn UpdateOn
}

func (s State) Valid() bool     { return s.Status == StatusValid }
func (s State) Invalid() bool   { return s.Status == StatusInvalid }
func (s State) Pending() bool   { return s.Status == StatusPending }
func (s State) Disabled() bool  { return s.Status == StatusDisabled }
func (s State) Pristine() bool  { return !s.Dirty }
func (s State) Untouched() bool { return !s.Touched }
