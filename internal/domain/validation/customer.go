// Package validation holds the checkout form rules used to keep fake or spam submissions out.
package validation

import (
	"regexp"
	"strings"
	"unicode"
)

var disposableEmailDomains = map[string]struct{}{
	"10minutemail.com": {}, "10minutemail.net": {}, "tempmail.com": {}, "temp-mail.org": {},
	"guerrillamail.com": {}, "guerrillamail.org": {}, "mailinator.com": {}, "mailinator.net": {},
	"throwaway.email": {}, "throwawaymail.com": {}, "fakeinbox.com": {}, "trashmail.com": {},
	"trashmail.net": {}, "mailnesia.com": {}, "tempail.com": {}, "dispostable.com": {},
	"sharklasers.com": {}, "spam4.me": {}, "maildrop.cc": {}, "getairmail.com": {},
	"getnada.com": {}, "yopmail.com": {}, "yopmail.fr": {}, "yopmail.net": {},
	"mohmal.com": {}, "emailondeck.com": {}, "tempr.email": {}, "discard.email": {},
	"dropmail.me": {}, "mailcatch.com": {}, "mintemail.com": {}, "mytemp.email": {},
	"spamgourmet.com": {}, "harakirimail.com": {}, "mailexpire.com": {}, "tempinbox.com": {},
	"fake-box.com": {}, "fakemail.fr": {}, "tempmailaddress.com": {}, "emailfake.com": {},
	"emkei.cz": {}, "mailsac.com": {}, "inboxkitten.com": {}, "burnermail.io": {},
}

var validDDD = map[string]struct{}{
	"11": {}, "12": {}, "13": {}, "14": {}, "15": {}, "16": {}, "17": {}, "18": {}, "19": {},
	"21": {}, "22": {}, "24": {}, "27": {}, "28": {},
	"31": {}, "32": {}, "33": {}, "34": {}, "35": {}, "37": {}, "38": {},
	"41": {}, "42": {}, "43": {}, "44": {}, "45": {}, "46": {}, "47": {}, "48": {}, "49": {},
	"51": {}, "53": {}, "54": {}, "55": {},
	"61": {}, "62": {}, "63": {}, "64": {}, "65": {}, "66": {}, "67": {}, "68": {}, "69": {},
	"71": {}, "73": {}, "74": {}, "75": {}, "77": {}, "79": {},
	"81": {}, "82": {}, "83": {}, "84": {}, "85": {}, "86": {}, "87": {}, "88": {}, "89": {},
	"91": {}, "92": {}, "93": {}, "94": {}, "95": {}, "96": {}, "97": {}, "98": {}, "99": {},
}

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	cepPattern    = regexp.MustCompile(`^\d{5}-?\d{3}$`)
	ufPattern     = regexp.MustCompile(`^[A-Z]{2}$`)
	keyboardSeqs  = []string{"qwerty", "asdfgh", "zxcvbn", "qazwsx"}
	nameKeyboard  = []string{"asdf", "qwer", "zxcv"}
	fakePrefixes  = []string{"12345", "11111", "00000", "99999"}
	ascendingRun  = "0123456789"
	descendingRun = "9876543210"
)

// DigitsOnly strips formatting from phone numbers and CEPs.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Phone validates a Brazilian landline or mobile number. It returns "" when valid.
func Phone(phone string) string {
	clean := DigitsOnly(phone)
	if len(clean) < 10 || len(clean) > 11 {
		return "Telefone deve ter 10 ou 11 dígitos"
	}
	ddd := clean[:2]
	if _, ok := validDDD[ddd]; !ok {
		return "DDD " + ddd + " inválido"
	}
	number := clean[2:]
	if len(number) == 9 && number[0] != '9' {
		return "Celular deve começar com 9"
	}
	if len(number) == 8 && !strings.ContainsRune("2345", rune(number[0])) {
		return "Telefone fixo inválido"
	}
	for _, p := range fakePrefixes {
		if strings.HasPrefix(clean, p) {
			return "Número de telefone inválido"
		}
	}
	if hasRepeatedRun(clean, 6) {
		return "Número de telefone inválido"
	}
	for i := 0; i+6 <= len(ascendingRun); i++ {
		if strings.Contains(clean, ascendingRun[i:i+6]) || strings.Contains(clean, descendingRun[i:i+6]) {
			return "Número de telefone inválido"
		}
	}
	return ""
}

// Email validates format and rejects disposable inboxes. It returns "" when valid.
func Email(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return "Formato de email inválido"
	}
	at := strings.LastIndex(email, "@")
	local, domain := email[:at], email[at+1:]
	if _, ok := disposableEmailDomains[domain]; ok {
		return "Emails temporários não são permitidos"
	}
	if len(local) < 3 {
		return "Email muito curto"
	}
	if distinctRunes(strings.ReplaceAll(local, ".", "")) <= 2 {
		return "Email inválido"
	}
	for _, p := range keyboardSeqs {
		if strings.Contains(local, p) {
			return "Email inválido"
		}
	}
	return ""
}

// Name requires first and last name made of letters. It returns "" when valid.
func Name(name string) string {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 5 {
		return "Nome muito curto"
	}
	words := strings.Fields(name)
	if len(words) < 2 {
		return "Informe nome e sobrenome"
	}
	for _, w := range words {
		if len([]rune(w)) < 2 {
			return "Nome inválido"
		}
		for _, r := range w {
			if !unicode.IsLetter(r) {
				return "Nome deve conter apenas letras"
			}
		}
		if len([]rune(w)) > 2 && distinctRunes(strings.ToLower(w)) == 1 {
			return "Nome inválido"
		}
	}
	lower := strings.ToLower(name)
	for _, p := range nameKeyboard {
		if strings.Contains(lower, p) {
			return "Nome inválido"
		}
	}
	return ""
}

// EmailFormat is the structural check applied when an order is stored.
func EmailFormat(email string) bool {
	return emailPattern.MatchString(strings.ToLower(strings.TrimSpace(email)))
}

// PhoneDigits accepts any number with 10 or 11 digits once formatting is stripped.
func PhoneDigits(phone string) bool {
	n := len(DigitsOnly(phone))
	return n == 10 || n == 11
}

func CEP(cep string) bool {
	return cepPattern.MatchString(strings.TrimSpace(cep))
}

// UF checks the shape of a state code; membership in the region table is checked by shipping.
func UF(uf string) bool {
	return ufPattern.MatchString(strings.ToUpper(strings.TrimSpace(uf)))
}

func hasRepeatedRun(s string, n int) bool {
	run := 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			run++
			if run >= n {
				return true
			}
			continue
		}
		run = 1
	}
	return false
}

func distinctRunes(s string) int {
	seen := map[rune]struct{}{}
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return len(seen)
}
