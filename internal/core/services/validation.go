package services

import (
	"errors"
	"fmt"

	"imc-donations/internal/core/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldMessages maps "<StructField>.<tag>" to the caller-facing message
var fieldMessages = map[string]string{
	"Name.required":      "O nome é obrigatório.",
	"Name.min":           "O nome deve ter entre 3 e 100 caracteres.",
	"Name.max":           "O nome deve ter entre 3 e 100 caracteres.",
	"Email.required":     "O e-mail é obrigatório.",
	"Email.email":        "O formato do e-mail é inválido.",
	"Email.max":          "O e-mail deve ter no máximo 100 caracteres.",
	"Password.required":  "A senha é obrigatória.",
	"Phone.max":          "O telefone deve ter no máximo 15 caracteres.",
	"PostalCode.max":     "O CEP deve ter no máximo 9 caracteres.",
	"State.len":          "O estado deve ser a sigla de 2 letras.",
	"State.alpha":        "O estado deve ser a sigla de 2 letras.",
	"BirthDate.datetime": "Data de nascimento inválida. Use AAAA-MM-DD.",
}

// validateStruct runs the struct tags and turns the first failure into a
// domain.ValidationError
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := fieldMessages[fe.StructField()+"."+fe.Tag()]; ok {
			return domain.NewValidationError(msg)
		}
		return domain.NewValidationError(fmt.Sprintf("Campo inválido: %s.", fe.Field()))
	}
	return domain.NewValidationError("Dados inválidos.")
}
