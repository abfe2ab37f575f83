package payments

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const pixGUI = "br.gov.bcb.pix"

// BRCode is the static PIX "copia e cola" payload (EMV merchant presented QR).
type BRCode struct {
	Key          string
	MerchantName string
	MerchantCity string
	Amount       float64
	TxID         string
	Description  string
}

func emvField(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// String renders the payload including the trailing CRC16 field.
func (b BRCode) String() string {
	account := emvField("00", pixGUI) + emvField("01", b.Key)
	if d := sanitizeEMV(b.Description, 40); d != "" {
		account += emvField("02", d)
	}
	txid := sanitizeTxID(b.TxID)
	if txid == "" {
		txid = "***"
	}

	var sb strings.Builder
	sb.WriteString(emvField("00", "01"))
	sb.WriteString(emvField("26", account))
	sb.WriteString(emvField("52", "0000"))
	sb.WriteString(emvField("53", "986"))
	if b.Amount > 0 {
		sb.WriteString(emvField("54", fmt.Sprintf("%.2f", b.Amount)))
	}
	sb.WriteString(emvField("58", "BR"))
	sb.WriteString(emvField("59", sanitizeEMV(b.MerchantName, 25)))
	sb.WriteString(emvField("60", sanitizeEMV(b.MerchantCity, 15)))
	sb.WriteString(emvField("62", emvField("05", txid)))
	sb.WriteString("6304")
	payload := sb.String()
	return payload + fmt.Sprintf("%04X", crc16CCITT([]byte(payload)))
}

// crc16CCITT is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF) as required by the BR Code manual.
func crc16CCITT(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// sanitizeEMV strips accents and anything outside printable ASCII, then truncates.
func sanitizeEMV(s string, max int) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToUpper(strings.TrimSpace(s))) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if r >= 0x20 && r < 0x7F {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func sanitizeTxID(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > 25 {
		out = out[:25]
	}
	return out
}
