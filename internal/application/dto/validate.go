package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/facturapp-api/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Los errores usan el nombre JSON del campo.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Validate valida un DTO con las etiquetas `validate` y devuelve *domain.ValidationError
// con un mensaje por campo, o nil.
func Validate(in any) error {
	err := instance().Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.ErrInvalidInput
	}
	out := &domain.ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "SaveInvoiceRequest.lines[0].description" -> "lines[0].description".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "debe ser un email válido"
	case "len":
		if fe.Field() == "phone" {
			return "número inválido (10 dígitos)"
		}
		return "debe tener exactamente " + fe.Param() + " caracteres"
	case "number":
		return "solo se permiten dígitos"
	case "max":
		if fe.Kind() == reflect.String {
			return "no puede superar " + fe.Param() + " caracteres"
		}
		return "debe ser como máximo " + fe.Param()
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return "debe tener al menos " + fe.Param() + " caracteres"
		}
		return "debe ser como mínimo " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "datetime":
		return "formato de fecha inválido (AAAA-MM-DD)"
	case "url":
		return "debe ser una URL válida"
	case "uuid":
		return "identificador inválido"
	}
	return "valor inválido"
}
