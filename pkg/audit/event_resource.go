package audit

import "fmt"

// Operations recorded by ResourceEvent.
const (
	OperationCreate     = "create"
	OperationUpdate     = "update"
	OperationDelete     = "delete"
	OperationRestore    = "restore"
	OperationCancel     = "cancel"
	OperationReactivate = "reactivate"
)

// Resource kinds recorded by ResourceEvent.
const (
	KindSubscription = "subscription"
	KindCategory     = "category"
)

// ResourceEvent is a change a user made to one of their subscriptions or
// categories.
type ResourceEvent struct {
	UserID       uint
	ClientIP     string
	Kind         string
	ResourceID   uint
	Operation    string
	Success      bool
	ErrorMessage string
}

func (e ResourceEvent) MessageID() string {
	return e.Kind
}

func (e ResourceEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("user %d %s %s %d", e.UserID, pastTense(e.Operation), e.Kind, e.ResourceID)
	}
	msg := fmt.Sprintf("user %d tried to %s %s %d", e.UserID, e.Operation, e.Kind, e.ResourceID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ResourceEvent) Severity() Severity {
	return severity(e.Success)
}

func (e ResourceEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ResourceEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": fmt.Sprint(e.UserID),
		},
		SDIDSubject: {
			e.Kind: fmt.Sprint(e.ResourceID),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result(e.Success),
		},
	}
}

func pastTense(operation string) string {
	switch operation {
	case OperationCancel:
		return "cancelled"
	case "":
		return "changed"
	}
	if operation[len(operation)-1] == 'e' {
		return operation + "d"
	}
	return operation + "ed"
}
