package api

import "github.com/veridoc/pdfdiff/internal/storage"

// healthResponse is returned by GET /healthz.
type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// jobAccepted is returned by POST /v1/diff/jobs.
type jobAccepted struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// jobResponse is returned by GET /v1/jobs/{id}.
type jobResponse struct {
	*storage.JobRecord
	Result interface{} `json:"result,omitempty"`
}
