package source

import (
	"sync"

	"github.com/aire-program/aire-impact-dashboard/pkg/dataset"
)

// Status describes the session for display.
type Status struct {
	ID        string `json:"session_id"`
	State     string `json:"active_source"`
	HasUpload bool   `json:"has_upload"`
	DatasetID string `json:"uploaded_dataset_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Session holds the active data source of one user.
type Session struct {
	id  string
	ref *ReferenceCache

	mu       sync.RWMutex
	state    State
	uploaded *dataset.Dataset
	message  string
}

// NewSession creates a session on the reference dataset.
func NewSession(id string, ref *ReferenceCache) *Session {
	return &Session{id: id, ref: ref, state: Reference}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the selected source.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// HasUpload reports whether an uploaded dataset is held.
func (s *Session) HasUpload() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uploaded != nil
}

// Active returns the dataset in effect. When the uploaded source is
// selected but nothing is held, the session falls back to the
// reference dataset.
func (s *Session) Active() (*dataset.Dataset, State, error) {
	s.mu.Lock()
	if s.state == Uploaded && s.uploaded != nil {
		ds := s.uploaded
		s.mu.Unlock()
		return ds, Uploaded, nil
	}
	if s.state == Uploaded {
		s.state = Reference
		s.message = "Uploaded dataset is not available, using reference data."
	}
	s.mu.Unlock()

	ds, err := s.ref.Dataset()
	if err != nil {
		return nil, Reference, err
	}
	return ds, Reference, nil
}

// Upload validates a complete bundle and makes it the active source.
// On failure the session returns to the reference source, any earlier
// upload is kept, and the reason becomes the status message.
func (s *Session) Upload(raw dataset.Raw) error {
	ds, err := dataset.Build(raw)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = Reference
		s.message = "Validation failed: " + err.Error()
		return UploadError(s.id, err)
	}
	s.uploaded = ds
	s.state = Uploaded
	s.message = "Uploaded data are now in use for this session."
	return nil
}

// Fail records a failure that happened before validation, for example
// while reading the uploaded files.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reference
	s.message = "Validation failed: " + err.Error()
}

// Select switches between held sources. Selecting the uploaded source
// without an upload is an error and changes nothing.
func (s *Session) Select(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st == Uploaded && s.uploaded == nil {
		return NoUploadError(s.id)
	}
	s.state = st
	return nil
}

// Discard drops the uploaded dataset and reverts to the reference one.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploaded = nil
	s.state = Reference
	s.message = "Uploaded data were discarded, using reference data."
}

// Status returns a snapshot for display.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := Status{
		ID:        s.id,
		State:     s.state.String(),
		HasUpload: s.uploaded != nil,
		Message:   s.message,
	}
	if s.uploaded != nil {
		res.DatasetID = s.uploaded.ID
	}
	return res
}
