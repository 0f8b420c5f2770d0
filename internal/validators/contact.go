package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
	"unicode"
)

// Resolver é o subconjunto de net.Resolver usado na checagem de domínio.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// NormalizePhone mantém apenas os dígitos. O telefone é a chave do cliente
// dentro do salão.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhoneValid aceita de 10 a 13 dígitos (fixo, celular, com ou sem DDI).
func IsPhoneValid(phone string) bool {
	n := len(NormalizePhone(phone))
	return n >= 10 && n <= 13
}

func IsEmailSyntaxValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == strings.TrimSpace(email)
}

// IsEmailDomainValid verifica se o domínio do e-mail possui MX ou, na
// falta dele, algum endereço.
func IsEmailDomainValid(ctx context.Context, r Resolver, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if hosts, err := r.LookupHost(ctx, domain); err == nil && len(hosts) > 0 {
		return true
	}

	return false
}
