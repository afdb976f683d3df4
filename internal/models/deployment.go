package models

import (
	"errors"
	"strings"
)

var ErrProjectRequired = errors.New("either project name or project id must be provided")

// StatusQuery identifies the deployment the wait is interested in.
// ProjectName and ProjectId are serialized as null when not set.
type StatusQuery struct {
	Sha         string  `json:"sha"`
	JobName     string  `json:"jobName"`
	ProjectName *string `json:"vercelProjectName"`
	ProjectId   *string `json:"vercelProjectId"`
}

// NewStatusQuery builds a query, leaving empty project identifiers unset.
func NewStatusQuery(sha, jobName, projectName, projectId string) StatusQuery {
	query := StatusQuery{
		Sha:     sha,
		JobName: jobName,
	}
	if projectName = strings.TrimSpace(projectName); projectName != "" {
		query.ProjectName = &projectName
	}
	if projectId = strings.TrimSpace(projectId); projectId != "" {
		query.ProjectId = &projectId
	}
	return query
}

// Validate checks that at least one project identifier is present.
func (query StatusQuery) Validate() error {
	if isBlank(query.ProjectName) && isBlank(query.ProjectId) {
		return ErrProjectRequired
	}
	return nil
}

// Project returns a human readable project reference for log messages.
func (query StatusQuery) Project() string {
	if !isBlank(query.ProjectName) {
		return *query.ProjectName
	}
	if !isBlank(query.ProjectId) {
		return *query.ProjectId
	}
	return ""
}

func isBlank(value *string) bool {
	return value == nil || strings.TrimSpace(*value) == ""
}

type StatusResponse struct {
	DeploymentId  string           `json:"deploymentId"`
	Status        DeploymentStatus `json:"status"`
	DeploymentURL string           `json:"deploymentURL,omitempty"`
}

type RegisterCheckRequest struct {
	Sha string `json:"sha"`
}
