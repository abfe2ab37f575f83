package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	cases := []struct {
		phone string
		valid bool
	}{
		{"(11) 98765-4321", false}, // contains 987654 descending run
		{"(21) 99183-2746", true},
		{"(11) 3274-5518", true},
		{"11999999999", false},
		{"(20) 99183-2746", false},
		{"(21) 89183-2746", false},
		{"(21) 7183-2746", false},
		{"1234", false},
		{"(31) 91234-5678", false},
	}
	for _, tc := range cases {
		t.Run(tc.phone, func(t *testing.T) {
			msg := Phone(tc.phone)
			assert.Equal(t, tc.valid, msg == "", "message: %q", msg)
		})
	}
}

func TestEmail(t *testing.T) {
	assert.Empty(t, Email("maria.souza@gmail.com"))
	assert.Empty(t, Email("  Maria.Souza@Gmail.com "))
	assert.Equal(t, "Formato de email inválido", Email("maria@"))
	assert.Equal(t, "Emails temporários não são permitidos", Email("maria@mailinator.com"))
	assert.Equal(t, "Email muito curto", Email("ma@gmail.com"))
	assert.Equal(t, "Email inválido", Email("aaaa@gmail.com"))
	assert.Equal(t, "Email inválido", Email("joao.qwerty@gmail.com"))
}

func TestName(t *testing.T) {
	assert.Empty(t, Name("Maria Silva"))
	assert.Empty(t, Name("João Conceição"))
	assert.Equal(t, "Nome muito curto", Name("Ana"))
	assert.Equal(t, "Informe nome e sobrenome", Name("Mariana"))
	assert.Equal(t, "Nome inválido", Name("Maria S"))
	assert.Equal(t, "Nome deve conter apenas letras", Name("Maria S1lva"))
	assert.Equal(t, "Nome inválido", Name("Aaaa Silva"))
	assert.Equal(t, "Nome inválido", Name("Asdf Silva"))
}

func TestCEPAndUF(t *testing.T) {
	assert.True(t, CEP("01310-100"))
	assert.True(t, CEP("01310100"))
	assert.False(t, CEP("0131-100"))
	assert.True(t, UF("rj"))
	assert.False(t, UF("RJX"))
	assert.Equal(t, "01310100", DigitsOnly("01310-100"))
}

func TestStructuralChecks(t *testing.T) {
	assert.True(t, EmailFormat("m@x.com"))
	assert.False(t, EmailFormat("m@x"))
	assert.True(t, PhoneDigits("11999999999"))
	assert.True(t, PhoneDigits("(11) 3274-5518"))
	assert.False(t, PhoneDigits("119999"))
}
