// Package services defines the business logic for comment lists, draws,
// bulk generation, messaging, and rating images. This file centralizes the
// service-level error values so that they can be returned by service methods
// and checked by callers with errors.Is.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

// Credential errors.
var (
	// ErrUnauthorized is returned when the admin access code or the bulk
	// generator key is missing or does not match. No state is touched.
	ErrUnauthorized = errors.New("unauthorized")
)

// Comment pool errors.
var (
	// ErrListNotFound indicates that the requested list does not exist.
	ErrListNotFound = errors.New("comment list not found")

	// ErrListExists is returned when creating a list whose id is taken.
	ErrListExists = errors.New("comment list already exists")

	// ErrCommentNotFound indicates that the comment id is absent from the list.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrCommentExists is returned when the comment id is already used in the list.
	ErrCommentExists = errors.New("comment already exists")

	// ErrListLocked is returned for single draws on a locked list.
	ErrListLocked = errors.New("comment list is locked")

	// ErrAlreadyGenerated is returned when the device already drew from the list.
	// Clients branch on this exact text.
	ErrAlreadyGenerated = errors.New("can only generate one comment per list")

	// ErrInvalidCount is returned for bulk counts outside [1, max].
	ErrInvalidCount = errors.New("invalid count")
)

// Input errors.
var (
	// ErrInvalidID is returned for blank or over-long list, comment, device,
	// or user identifiers.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrEmptyContent is returned when content is blank after trimming.
	ErrEmptyContent = errors.New("content is empty")

	// ErrTooLong is returned when content exceeds the configured rune limit.
	ErrTooLong = errors.New("content too long")
)

// Rating image errors.
var (
	// ErrImageNotFound indicates that no image with that id belongs to the user.
	ErrImageNotFound = errors.New("image not found")

	// ErrUnsupportedImage is returned when the upload is not a recognizable image.
	ErrUnsupportedImage = errors.New("unsupported image type")

	// ErrImageTooLarge is returned when the upload exceeds the size limit.
	ErrImageTooLarge = errors.New("image too large")
)
