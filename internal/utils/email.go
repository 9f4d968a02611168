package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"campusbites_back_end/internal/models"
)

// SendOrderConfirmation envoie l'e-mail de confirmation d'une commande.
// Appelé en best effort depuis le handler : un échec est loggé, jamais
// remonté au client.
func SendOrderConfirmation(order models.Order) error {
	if order.Email == "" {
		return nil
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️ SMTP non configuré — e-mail de confirmation sauté")
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(os.Getenv("SMTP_FROM")); err != nil {
		return err
	}
	if err := msg.To(order.Email); err != nil {
		return err
	}
	msg.Subject("Confirmation de votre commande CampusBites")
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(order))

	client, err := mail.NewClient(host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de confirmation à", order.Email)
	return client.DialAndSend(msg)
}

func orderConfirmationHTML(order models.Order) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Commande reçue</h2>
		<p>Bonjour %s,</p>
		<p>Votre commande sur le campus <strong>%s</strong> a bien été enregistrée (%s).</p>
		<p><strong>Articles :</strong> %s</p>
		<p><strong>Total :</strong> Rs %.0f (dont livraison Rs %.0f)</p>
		<p>Statut actuel : <strong>%s</strong></p>
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe CampusBites</strong>
		</p>
	</div>
</body>
</html>`,
		order.FirstName, order.CampusName, order.CreatedAtDisplay,
		order.OrderItems, order.GrandTotal, order.DeliveryCharge, order.Status)
}
