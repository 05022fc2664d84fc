// Package validate checks form input locally before any network call is
// issued. The password policy duplicates the server-side rule on purpose and
// is therefore carried as configuration data, not hard-coded logic.
package validate

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/organizae/app/domain"
)

// PasswordPolicy is the shared client/server password rule.
type PasswordPolicy struct {
	MinLength     int
	RequireUpper  bool
	RequireDigit  bool
	RequireSymbol bool
}

// DefaultPasswordPolicy matches the backend's registration rule.
var DefaultPasswordPolicy = PasswordPolicy{
	MinLength:     7,
	RequireUpper:  true,
	RequireDigit:  true,
	RequireSymbol: true,
}

// Validator wraps go-playground/validator with the application's password
// policy registered as the "senha" rule.
type Validator struct {
	v      *validator.Validate
	policy PasswordPolicy
}

func New(policy PasswordPolicy) *Validator {
	if policy.MinLength <= 0 {
		policy = DefaultPasswordPolicy
	}
	v := validator.New()
	_ = v.RegisterValidation("senha", func(fl validator.FieldLevel) bool {
		return policy.Allows(fl.Field().String())
	})
	return &Validator{v: v, policy: policy}
}

// Allows reports whether a password satisfies the policy.
func (p PasswordPolicy) Allows(senha string) bool {
	if len(senha) < p.MinLength {
		return false
	}
	var upper, digit, symbol bool
	for _, r := range senha {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if p.RequireUpper && !upper {
		return false
	}
	if p.RequireDigit && !digit {
		return false
	}
	if p.RequireSymbol && !symbol {
		return false
	}
	return true
}

// Email validates an e-mail address.
func (vd *Validator) Email(email string) error {
	if err := vd.v.Var(email, "required,email"); err != nil {
		return domain.NewError(domain.ErrCodeInvalid, "E-mail inválido.")
	}
	return nil
}

// Password validates a password against the policy.
func (vd *Validator) Password(senha string) error {
	if err := vd.v.Var(senha, "senha"); err != nil {
		return domain.NewError(domain.ErrCodeInvalid,
			"Senha inválida (mín. 7 chars, 1 maiúscula, 1 número, 1 símbolo).")
	}
	return nil
}

// Required validates that every named field has a value.
func (vd *Validator) Required(fields map[string]string) error {
	for _, value := range fields {
		if strings.TrimSpace(value) == "" {
			return domain.NewError(domain.ErrCodeInvalid, "Preencha todos os campos.")
		}
	}
	return nil
}

// PasswordChange validates the new-password pair from the settings form.
func (vd *Validator) PasswordChange(nova, confirmacao string) error {
	if nova != confirmacao {
		return domain.NewError(domain.ErrCodeInvalid, "As novas senhas não coincidem.")
	}
	return vd.Password(nova)
}
