package utils

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// PaymentQR encode la référence de virement bancaire d'une commande en QR
// (base64 PNG) pour les applications bancaires. Purement indicatif, comme la
// preuve de paiement elle-même.
func PaymentQR(bankName, accountTitle, reference string, amount float64) (string, error) {
	payload := fmt.Sprintf("BANK:%s;ACCOUNT:%s;REF:%s;AMOUNT:%.2f", bankName, accountTitle, reference, amount)

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("erreur génération QR: %v", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
