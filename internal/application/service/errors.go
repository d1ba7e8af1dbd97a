package service

import "errors"

var (
	// ErrInvalidAction is returned for actions other than APPROVE and REJECT
	ErrInvalidAction = errors.New("invalid action")
	// ErrInvalidStatus is returned for unknown task status filters
	ErrInvalidStatus = errors.New("invalid task status")
	// ErrTaskNotFound is returned when a selected task is not part of the invoice's workflow
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidInput wraps request validation failures
	ErrInvalidInput = errors.New("invalid input")
	// ErrDealNotEditable is returned when the deal has left DRAFT
	ErrDealNotEditable = errors.New("deal is not editable")
	// ErrDealNotSubmittable is returned when the deal is not a draft awaiting submission
	ErrDealNotSubmittable = errors.New("deal cannot be submitted")
)
