package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an error into the response taxonomy.
type Kind string

const (
	KindValidation         Kind = "validation"
	KindAuthentication     Kind = "authentication"
	KindAuthorization      Kind = "authorization"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindAlreadyImported    Kind = "already_imported"
	KindHeaderNotFound     Kind = "header_not_found"
	KindStorageUnavailable Kind = "storage_unavailable"
	KindUnknown            Kind = "unknown"
)

// RequiredPermission is echoed back on authorization failures so the client
// knows which grant was missing.
type RequiredPermission struct {
	Module string `json:"module"`
	Action string `json:"action"`
}

type Error struct {
	Kind     Kind
	Message  string
	Required []RequiredPermission
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func Authorization(message string, required ...RequiredPermission) *Error {
	return &Error{Kind: KindAuthorization, Message: message, Required: required}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func AlreadyImported(message string) *Error {
	return &Error{Kind: KindAlreadyImported, Message: message}
}

func HeaderNotFound(message string) *Error {
	return &Error{Kind: KindHeaderNotFound, Message: message}
}

func Unknown(err error) *Error {
	return &Error{Kind: KindUnknown, Message: "internal error", Err: err}
}

// Storage wraps an infrastructure failure. Authorization checks treat it as
// deny, never as grant.
func Storage(err error) *Error {
	return &Error{Kind: KindStorageUnavailable, Message: "storage unavailable", Err: err}
}

// IsKind reports whether err carries the given taxonomy kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func statusFor(kind Kind) int {
	switch kind {
	case KindValidation, KindAlreadyImported, KindHeaderNotFound:
		return fiber.StatusBadRequest
	case KindAuthentication:
		return fiber.StatusUnauthorized
	case KindAuthorization:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindStorageUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler translates errors at the Fiber boundary. Unknown errors expose
// their message only outside production.
func ErrorHandler(isProduction bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var e *Error
		if errors.As(err, &e) {
			body := fiber.Map{"error": e.Message}
			if len(e.Required) == 1 {
				body["required"] = e.Required[0]
			} else if len(e.Required) > 1 {
				body["required"] = e.Required
			}
			return c.Status(statusFor(e.Kind)).JSON(body)
		}

		if fe, ok := err.(*fiber.Error); ok {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		if isProduction {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
