package httpx

import "github.com/gin-gonic/gin"

// Envelope is the JSON shape shared by every API response.
type Envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func OK(c *gin.Context, code int, message string, data any) {
	c.JSON(code, Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{
		Status:  "error",
		Message: message,
	})
}

func ValidationError(c *gin.Context, code int, message string, errs map[string]string) {
	c.JSON(code, Envelope{
		Status:  "error",
		Message: message,
		Errors:  errs,
	})
}
