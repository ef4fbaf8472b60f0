package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"pedagoia-backend/config"
)

// Mailer sends transactional mail over SMTP. Delivery failures are the
// caller's to log; they must never fail the request that triggered them.
type Mailer struct {
	host     string
	port     int
	from     string
	password string
	appURL   string
}

func New() *Mailer {
	return &Mailer{
		host:     config.SMTP_HOST,
		port:     config.SMTP_PORT,
		from:     config.SMTP_FROM,
		password: config.SMTP_PASSWORD,
		appURL:   config.APP_URL,
	}
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if m.host == "" {
		return fmt.Errorf("smtp not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return d.DialAndSend(msg)
}

func (m *Mailer) SendVerificationEmail(to, token string) error {
	link := fmt.Sprintf("%s/verify?token=%s", m.appURL, token)
	body := fmt.Sprintf(`<p>Bienvenue sur Pedagoia !</p>
<p>Cliquez sur le lien suivant pour activer votre compte :</p>
<p><a href="%s">%s</a></p>`, link, link)
	return m.send(to, "Activez votre compte Pedagoia", body)
}

func (m *Mailer) SendPasswordResetEmail(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.appURL, token)
	body := fmt.Sprintf(`<p>Vous avez demandé la réinitialisation de votre mot de passe.</p>
<p><a href="%s">Choisir un nouveau mot de passe</a></p>
<p>Ce lien expire dans une heure.</p>`, link)
	return m.send(to, "Réinitialisation de votre mot de passe", body)
}

func (m *Mailer) SendWelcomeEmail(to, firstName string) error {
	if firstName == "" {
		firstName = "Utilisateur"
	}
	body := fmt.Sprintf(`<p>Bonjour %s,</p>
<p>Votre abonnement Pedagoia est actif. Bonne préparation de classe !</p>`, firstName)
	return m.send(to, "Bienvenue sur Pedagoia", body)
}

func (m *Mailer) SendAmbassadorWelcome(to, firstName string) error {
	if firstName == "" {
		firstName = "Utilisateur"
	}
	body := fmt.Sprintf(`<p>Bonjour %s,</p>
<p>Votre accès ambassadeur Pedagoia est activé. Merci de faire rayonner l'outil
auprès de vos collègues !</p>`, firstName)
	return m.send(to, "Votre accès ambassadeur Pedagoia", body)
}
