package validators

import (
	"reflect"
	"strings"

	"neurovita_checkout/internal/domain/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	TagBRPhone = "br_phone"
	TagCEP     = "cep"
	TagBRUF    = "br_uf"
)

// RegisterCheckoutValidators installs the Brazilian address and phone tags on gin's validator and
// reports field errors under their JSON names.
func RegisterCheckoutValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)
	for tag, fn := range map[string]validator.Func{
		TagBRPhone: func(fl validator.FieldLevel) bool { return validation.PhoneDigits(fl.Field().String()) },
		TagCEP:     func(fl validator.FieldLevel) bool { return validation.CEP(fl.Field().String()) },
		TagBRUF:    func(fl validator.FieldLevel) bool { return validation.UF(fl.Field().String()) },
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// FieldMessages turns validator errors into the per-field messages the checkout form shows inline.
func FieldMessages(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, exists := out[fe.Field()]; exists {
			continue
		}
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "email":
		return "Formato de email inválido"
	case TagBRPhone:
		return "Telefone deve ter 10 ou 11 dígitos"
	case TagCEP:
		return "CEP inválido"
	case TagBRUF:
		return "UF inválida"
	case "oneof":
		return "valor inválido"
	case "min", "gte":
		return "valor abaixo do mínimo"
	case "max", "lte":
		return "valor acima do máximo"
	}
	return "valor inválido"
}
