package models

type DeploymentStatus string

const (
	StatusQueued       DeploymentStatus = "QUEUED"
	StatusInitializing DeploymentStatus = "INITIALIZING"
	StatusBuilding     DeploymentStatus = "BUILDING"
	StatusReady        DeploymentStatus = "READY"
	StatusError        DeploymentStatus = "ERROR"
	StatusCanceled     DeploymentStatus = "CANCELED"
)

// IsTerminalFailure reports whether the deployment can no longer succeed.
func (status DeploymentStatus) IsTerminalFailure() bool {
	return status == StatusError || status == StatusCanceled
}

// IsKnown reports whether the status belongs to the set the service documents.
func (status DeploymentStatus) IsKnown() bool {
	switch status {
	case StatusQueued, StatusInitializing, StatusBuilding, StatusReady, StatusError, StatusCanceled:
		return true
	}
	return false
}

// IsInProgress reports whether more polling may change the outcome.
// Unknown values count as in progress so that new statuses added on the
// service side never abort a wait.
func (status DeploymentStatus) IsInProgress() bool {
	return status != StatusReady && !status.IsTerminalFailure()
}
