package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatValidationError(err error) []string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return messages
	}
	return []string{err.Error()}
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
		return fmt.Sprintf("%s debe ser uno de: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s no es válido", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Nombre":      "El nombre",
		"Apellidos":   "Los apellidos",
		"Email":       "El email",
		"Password":    "La contraseña",
		"NewPassword": "La nueva contraseña",
		"Rol":         "El rol",
		"Pais":        "El país",
		"Anio":        "El año",
		"Tipo":        "El tipo",
		"MarcaID":     "La marca",
		"ModeloID":    "El modelo",
		"VIN":         "El VIN",
		"Color":       "El color",
		"Precio":      "El precio",
		"Kilometraje": "El kilometraje",
		"Combustible": "El combustible",
		"Transmision": "La transmisión",
		"Estado":      "El estado",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
