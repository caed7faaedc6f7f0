package workflow

// StatusKind tags a status line so the panel can style it.
type StatusKind string

const (
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusWarning StatusKind = "warning"
	StatusError   StatusKind = "error"
)

// Status is the panel's one-line status readout.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message"`
}

func infoStatus(msg string) Status    { return Status{Kind: StatusInfo, Message: msg} }
func successStatus(msg string) Status { return Status{Kind: StatusSuccess, Message: msg} }
func warningStatus(msg string) Status { return Status{Kind: StatusWarning, Message: msg} }
func errorStatus(msg string) Status   { return Status{Kind: StatusError, Message: msg} }
