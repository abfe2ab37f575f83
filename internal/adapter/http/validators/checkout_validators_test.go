package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type addressForm struct {
	Phone string `json:"phone" validate:"required,br_phone"`
	CEP   string `json:"cep" validate:"required,cep"`
	State string `json:"state" validate:"required,br_uf"`
	Email string `json:"email" validate:"required,email"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, Register(v))
	return v
}

func TestCheckoutTags(t *testing.T) {
	v := newValidator(t)

	ok := addressForm{Phone: "(11) 99999-9999", CEP: "01001-000", State: "rj", Email: "m@x.com"}
	require.NoError(t, v.Struct(ok))

	bad := addressForm{Phone: "12345", CEP: "0100", State: "RJX", Email: "nope"}
	msgs := FieldMessages(v.Struct(bad))
	require.Equal(t, map[string]string{
		"phone": "Telefone deve ter 10 ou 11 dígitos",
		"cep":   "CEP inválido",
		"state": "UF inválida",
		"email": "Formato de email inválido",
	}, msgs)
}

func TestFieldMessagesRequired(t *testing.T) {
	v := newValidator(t)
	msgs := FieldMessages(v.Struct(addressForm{}))
	require.Equal(t, "campo obrigatório", msgs["phone"])
	require.Len(t, msgs, 4)

	require.Nil(t, FieldMessages(nil))
}
