package errs

import "errors"

// Domain-specific sentinel errors for the usecase layers.
// Handlers translate these to HTTP statuses; nothing here is fatal to the process.
var (
	// Not-found family
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRequestNotFound = errors.New("item request not found")

	// Business-rule violations
	ErrOwnBookingNotAllowed  = errors.New("booker cannot be the owner of the item")
	ErrItemUnavailable       = errors.New("item is not available for booking")
	ErrBookingAlreadyDecided = errors.New("booking has already been approved or rejected")
	ErrNoItemsOwned          = errors.New("user owns no items")
	ErrCommentNotAllowed     = errors.New("user has no finished approved booking for the item")
	ErrInvalidBookingFilter  = errors.New("unknown booking state filter")

	// Access violations
	ErrNotItemOwner    = errors.New("user is not the owner of the item")
	ErrBookingNoAccess = errors.New("user must be booker or item owner to view the booking")

	// Uniqueness violations
	ErrEmailAlreadyInUse = errors.New("email is already in use")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
