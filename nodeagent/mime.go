// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.

package nodeagent

import "sort"

// Operation identifies one node agent API call.
type Operation string

const (
	OpIssueCertificate            Operation = "IssueCertificate"
	OpGetIssueCertificateResponse Operation = "GetIssueCertificateResponse"
	OpGetFortanixAttestation      Operation = "GetFortanixAttestation"
	OpGetTargetInfo               Operation = "GetTargetInfo"
	OpGetAgentVersion             Operation = "GetAgentVersion"
)

const jsonContentType = "application/json"

// Only operations with a request body have a request content type.
var requestContentTypes = map[Operation]string{
	OpIssueCertificate:       jsonContentType,
	OpGetFortanixAttestation: jsonContentType,
}

var responseContentTypes = map[Operation]string{
	OpIssueCertificate:            jsonContentType,
	OpGetIssueCertificateResponse: jsonContentType,
	OpGetFortanixAttestation:      jsonContentType,
	OpGetTargetInfo:               jsonContentType,
	OpGetAgentVersion:             jsonContentType,
}

// RequestContentType returns the content type of op's request body.
func RequestContentType(op Operation) (string, bool) {
	ct, ok := requestContentTypes[op]
	return ct, ok
}

// ResponseContentType returns the content type of op's response body.
func ResponseContentType(op Operation) (string, bool) {
	ct, ok := responseContentTypes[op]
	return ct, ok
}

// Operations lists every known operation in lexical order.
func Operations() []Operation {
	ops := make([]Operation, 0, len(responseContentTypes))
	for op := range responseContentTypes {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}
