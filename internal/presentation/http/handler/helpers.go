package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/application/service"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/pizzeria-pos/internal/presentation/http/middleware"
	"github.com/sangkips/pizzeria-pos/pkg/apperror"
	"github.com/sangkips/pizzeria-pos/pkg/utils"
)

// GetActor extracts the logged-in staff member, writing a 401 when the
// request carries none
func GetActor(c *gin.Context) (service.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "Staff not authenticated")
	}
	return actor, ok
}

// ParseID reads a UUID path parameter, writing a 400 when malformed
func ParseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(c.Param(param))
	if err != nil {
		response.BadRequest(c, "Invalid "+param+" format")
		return uuid.Nil, false
	}
	return id, true
}

// UseJSONFieldNames makes validation errors name fields as they appear in
// the request body. Call once before serving.
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// BindJSON decodes the body into req. Binding tag failures become a 422
// listing every field; a malformed body is a 400.
func BindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fieldName(fe),
				Message: fieldMessage(fe),
			})
		}
		response.ValidationError(c, fieldErrors)
		return false
	}
	response.BadRequest(c, "Invalid request body")
	return false
}

// fieldName drops the request type from "AddItemRequest.modifiers[0].group"
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		return "must be " + fe.Param() + " characters"
	case "numeric":
		return "must contain only digits"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid":
		return "must be a valid id"
	case "datetime":
		return "must be a date formatted " + fe.Param()
	}
	return "is invalid"
}

func modifierChoices(in []request.ModifierChoiceRequest) []service.ModifierChoice {
	out := make([]service.ModifierChoice, 0, len(in))
	for _, m := range in {
		out = append(out, service.ModifierChoice{Group: m.Group, Option: m.Option})
	}
	return out
}
