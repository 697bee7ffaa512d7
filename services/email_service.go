package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"rallycommand-api/config"
	"rallycommand-api/models"
)

// EmailService sends the transactional mails. Every send runs on its own
// goroutine; a mail failure never fails the request that triggered it.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

func (es *EmailService) send(to, subject, htmlBody, textBody string) {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	go func() {
		if err := es.dialer.DialAndSend(m); err != nil {
			log.Printf("Failed to send email %q to %s: %v", subject, to, err)
		}
	}()
}

// SendWelcomeEmail greets a freshly registered team.
func (es *EmailService) SendWelcomeEmail(email, name string) {
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Welcome to RallyCommand, %s!</h2>
    <p>Your team account is ready. Add your vehicles, stock up the inventory
    and start logging setups and repairs.</p>
    <p><strong>The RallyCommand Team</strong></p>
</body>
</html>`, name)

	textBody := fmt.Sprintf(`Welcome to RallyCommand, %s!

Your team account is ready. Add your vehicles, stock up the inventory and
start logging setups and repairs.

The RallyCommand Team`, name)

	es.send(email, "Welcome to RallyCommand", htmlBody, textBody)
}

// NotifyLowStock implements LowStockNotifier. Fired by the ledger when a
// debit drops an item to or below its minimum stock threshold.
func (es *EmailService) NotifyLowStock(user *models.User, item *models.InventoryItem) {
	subject := fmt.Sprintf("RallyCommand - Low stock: %s", item.Name)

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Low stock warning</h2>
    <p>Hello %s,</p>
    <p><strong>%s</strong> is down to <strong>%d</strong> (minimum stock: %d).</p>
    <p>Supplier: %s<br>Part number: %s</p>
    <p>Time to reorder before the next event.</p>
    <p><strong>The RallyCommand Team</strong></p>
</body>
</html>`, user.Name, item.Name, item.Quantity, item.MinStock, item.Supplier, item.PartNumber)

	textBody := fmt.Sprintf(`Low stock warning

Hello %s,

%s is down to %d (minimum stock: %d).
Supplier: %s
Part number: %s

Time to reorder before the next event.

The RallyCommand Team`, user.Name, item.Name, item.Quantity, item.MinStock, item.Supplier, item.PartNumber)

	es.send(user.Email, subject, htmlBody, textBody)
}
