package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", field)
	case "email":
		return fmt.Sprintf("%s debe ser un email válido", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s debe tener al menos %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s debe ser como mínimo %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s debe tener como máximo %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s debe ser como máximo %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s no es válido", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Email":           "Email",
		"Password":        "Contraseña",
		"Name":            "Nombre",
		"Age":             "Edad",
		"Weight":          "Peso",
		"Height":          "Altura",
		"Gender":          "Género",
		"Calories":        "Calorías",
		"DurationMinutes": "Duración",
		"MealType":        "Tipo de comida",
		"Goal":            "Objetivo",
		"Text":            "Texto",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
