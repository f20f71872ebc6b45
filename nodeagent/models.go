// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package nodeagent

import (
	"github.com/google/uuid"

	"github.com/toeirei/emclient/internal/wire"
)

// TaskStatus is the state of a certificate issuance task.
type TaskStatus string

const (
	TaskStatusInProgress       TaskStatus = "INPROGRESS"
	TaskStatusFailed           TaskStatus = "FAILED"
	TaskStatusSuccess          TaskStatus = "SUCCESS"
	TaskStatusDenied           TaskStatus = "DENIED"
	TaskStatusPendingWhitelist TaskStatus = "PENDING_WHITELIST"
)

var taskStatuses = []TaskStatus{
	TaskStatusInProgress,
	TaskStatusFailed,
	TaskStatusSuccess,
	TaskStatusDenied,
	TaskStatusPendingWhitelist,
}

// ParseTaskStatus converts a wire token into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	return wire.ParseEnum(s, taskStatuses)
}

func (s TaskStatus) String() string { return string(s) }

func (s TaskStatus) MarshalText() ([]byte, error) { return wire.MarshalEnum(s, taskStatuses) }

func (s *TaskStatus) UnmarshalText(text []byte) error {
	return wire.UnmarshalEnum(text, taskStatuses, s)
}

// ResponseStatus reports whether the agent could serve an attestation.
type ResponseStatus string

const (
	ResponseStatusOK    ResponseStatus = "OK"
	ResponseStatusNotOK ResponseStatus = "NOT_OK"
)

var responseStatuses = []ResponseStatus{ResponseStatusOK, ResponseStatusNotOK}

// ParseResponseStatus converts a wire token into a ResponseStatus.
func ParseResponseStatus(s string) (ResponseStatus, error) {
	return wire.ParseEnum(s, responseStatuses)
}

func (s ResponseStatus) String() string { return string(s) }

func (s ResponseStatus) MarshalText() ([]byte, error) { return wire.MarshalEnum(s, responseStatuses) }

func (s *ResponseStatus) UnmarshalText(text []byte) error {
	return wire.UnmarshalEnum(text, responseStatuses, s)
}

// IssueCertificateRequest asks the agent to get a certificate signed for an enclave.
type IssueCertificateRequest struct {
	// Csr is a PEM encoded certificate signing request.
	Csr *string `json:"csr,omitempty"`
}

type IssueCertificateResponse struct {
	TaskID     *uuid.UUID  `json:"task_id,omitempty"`
	TaskStatus *TaskStatus `json:"task_status,omitempty"`
	// Certificate is the PEM encoded certificate, set once the task succeeded.
	Certificate *string `json:"certificate,omitempty"`
}

type GetFortanixAttestationRequest struct {
	// Report is the raw enclave report.
	Report                 []byte `json:"report"`
	AttestationCertificate []byte `json:"attestation_certificate,omitzero"`
	NodeCertificate        []byte `json:"node_certificate,omitzero"`
}

type GetFortanixAttestationResponse struct {
	Status                 *ResponseStatus `json:"status,omitempty"`
	AttestationCertificate []byte          `json:"attestation_certificate,omitzero"`
	Message                *string         `json:"message,omitempty"`
}

// TargetInfo carries the quoting enclave target info an enclave needs to
// produce a report for the agent.
type TargetInfo struct {
	TargetInfo []byte `json:"target_info,omitzero"`
}

type AgentVersion struct {
	Version string `json:"version"`
}
