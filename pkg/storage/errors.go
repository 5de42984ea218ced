package storage

import "errors"

// ErrNotFound is returned when a referenced donation, lead or allocation does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists is returned when creating a record whose id is already taken.
var ErrAlreadyExists = errors.New("record already exists")

// ErrConflict is returned when a conditional write fails because the record changed since it was read.
var ErrConflict = errors.New("record was modified concurrently")

// ErrLeadClosed is returned when an allocation targets a lead that no longer accepts funds.
var ErrLeadClosed = errors.New("lead is closed")
