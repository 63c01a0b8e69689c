// Package intake tracks the per-session slot-filling state of an intake
// conversation: which fields have been collected and which remain.
package intake

import (
	"errors"
	"fmt"

	"github.com/saikrishna2003/automated-pr-chatbot/domain"
)

// ErrUnknownField is returned when an answer targets a field that is not
// part of the intake.
var ErrUnknownField = errors.New("unknown intake field")

// ErrIncomplete is returned when a record is requested before every field
// has a value.
var ErrIncomplete = errors.New("intake is not complete")

// State accumulates field values for one session. Values are plain
// strings; content is not validated here (validation happens at PR time,
// see Validate* in this package).
type State struct {
	fields []string
	values map[string]string
}

// NewState creates an empty state for the Glue database intake.
func NewState() *State {
	return NewStateFor(domain.GlueDBFields)
}

// NewStateFor creates an empty state tracking the given fields.
func NewStateFor(fields []string) *State {
	return &State{
		fields: fields,
		values: make(map[string]string, len(fields)),
	}
}

// FromMap restores a state from a stored field map. Keys outside the
// field set are dropped.
func FromMap(fields []string, m map[string]string) *State {
	s := NewStateFor(fields)
	for _, f := range fields {
		if v, ok := m[f]; ok && v != "" {
			s.values[f] = v
		}
	}
	return s
}

// Record sets or overwrites an answer for a field.
func (s *State) Record(field, value string) error {
	if !s.known(field) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	s.values[field] = value
	return nil
}

// Missing returns the fields without a non-empty value, in declaration
// order regardless of the order answers arrived in.
func (s *State) Missing() []string {
	var missing []string
	for _, f := range s.fields {
		if s.values[f] == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every field holds a non-empty value.
func (s *State) Complete() bool {
	return len(s.Missing()) == 0
}

// Values returns a copy of the collected field map, suitable for storage.
func (s *State) Values() map[string]string {
	cp := make(map[string]string, len(s.values))
	for k, v := range s.values {
		cp[k] = v
	}
	return cp
}

func (s *State) known(field string) bool {
	for _, f := range s.fields {
		if f == field {
			return true
		}
	}
	return false
}

// GlueRecord converts a complete Glue database state into a record.
func GlueRecord(s *State) (*domain.GlueDBRecord, error) {
	if !s.Complete() {
		return nil, fmt.Errorf("%w: missing %v", ErrIncomplete, s.Missing())
	}
	return &domain.GlueDBRecord{
		IntakeID:            s.values["intake_id"],
		DatabaseName:        s.values["database_name"],
		DatabaseS3Location:  s.values["database_s3_location"],
		DatabaseDescription: s.values["database_description"],
		AWSAccountID:        s.values["aws_account_id"],
		Region:              s.values["region"],
		DataConstruct:       s.values["data_construct"],
		DataEnv:             s.values["data_env"],
		DataLayer:           s.values["data_layer"],
		SourceName:          s.values["source_name"],
		EnterpriseOrFunc:    s.values["enterprise_or_func_name"],
		EnterpriseOrFuncSub: s.values["enterprise_or_func_subgrp_name"],
	}, nil
}

// S3Record converts a complete S3 bucket state into a record.
func S3Record(s *State) (*domain.S3BucketRecord, error) {
	if !s.Complete() {
		return nil, fmt.Errorf("%w: missing %v", ErrIncomplete, s.Missing())
	}
	return &domain.S3BucketRecord{
		IntakeID:          s.values["intake_id"],
		BucketName:        s.values["bucket_name"],
		BucketDescription: s.values["bucket_description"],
		AWSAccountID:      s.values["aws_account_id"],
		AWSRegion:         s.values["aws_region"],
		UsageType:         s.values["usage_type"],
		EnterpriseOrFunc:  s.values["enterprise_or_func_name"],
	}, nil
}
