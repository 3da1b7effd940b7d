package user

import "tavolo-be/internal/apperr"

var (
	ErrEmailExists        = apperr.Conflict("email is already registered")
	ErrInvalidCredentials = apperr.Authorization("invalid email or password")
	ErrUserNotFound       = apperr.NotFound("user not found")
	ErrInvalidResetToken  = apperr.Validation("reset token is invalid or expired")
)
