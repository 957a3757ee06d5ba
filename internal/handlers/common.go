package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// idParam parses the :id path segment. A non-integer id cannot name any
// resource, so it answers 404 rather than 400.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// bindError turns a binding failure into a 400. Validation failures come back
// as a field -> message map; anything else (malformed JSON) as a single error.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[snakeCase(fe.Field())] = ruleMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Missing data for required field."
	case "email":
		return "Not a valid email address."
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s.", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters long.", fe.Param())
	default:
		return fmt.Sprintf("Failed validation rule '%s'.", fe.Tag())
	}
}

func snakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 && !unicode.IsUpper(rune(field[i-1])) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// serverError logs the cause and replies with a generic 500; internal detail
// never reaches the client.
func serverError(c *gin.Context, err error) {
	log.Printf("Error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
