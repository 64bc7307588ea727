package response

import "github.com/gofiber/fiber/v3"

type ErrorBody struct {
	Error string `json:"error"`
}

const (
	MessageBadRequest          = "Bad Request"
	MessageUnauthorized        = "Unauthorized"
	MessageForbidden           = "Forbidden"
	MessageNotFound            = "Not Found"
	MessageConflict            = "Conflict"
	MessageTooManyRequests     = "Too Many Requests"
	MessageRequestTooLarge     = "Request Entity Too Large"
	MessageInternalServerError = "Internal Server Error"
	MessageError               = "Error"
)

// JSON writes data as the response body.
func JSON(c fiber.Ctx, status int, data any) error {
	return c.Status(normalizeStatus(status)).JSON(data)
}

// Error writes {"error": message}, falling back to a status default.
func Error(c fiber.Ctx, status int, message string) error {
	st := normalizeStatus(status)
	if message == "" {
		message = DefaultMessage(st)
	}
	return c.Status(st).JSON(ErrorBody{Error: message})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func DefaultMessage(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusTooManyRequests:
		return MessageTooManyRequests
	case fiber.StatusRequestEntityTooLarge:
		return MessageRequestTooLarge
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
