package mail

import (
	"fmt"
	"time"

	domain "github.com/stylesync-app/booking-api/internal/domain/appointment"
	"github.com/stylesync-app/booking-api/internal/timerange"
)

const displayTimeLayout = "02/01/2006 15:04"

// ConfirmationEmail builds the booking confirmation message.
func ConfirmationEmail(
	clientName string,
	serviceName string,
	barberName string,
	slot timerange.TimeRange,
	priceMinor int64,
) (subject string, html string) {

	subject = "Confirmación de Reserva - StyleSync"

	html = fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
    <h1 style="color: #d4af37;">¡Tu reserva está confirmada!</h1>
    <p>Hola %s,</p>
    <p>Te esperamos para una experiencia premium.</p>
    <div style="background: #f4f4f4; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <ul style="list-style: none; padding: 0;">
            <li><strong>Servicio:</strong> %s</li>
            <li><strong>Experto:</strong> %s</li>
            <li><strong>Fecha:</strong> %s</li>
            <li><strong>Total:</strong> %s</li>
        </ul>
    </div>
    <p>Si necesitas cancelar, por favor avísanos con anticipación.</p>
    <p>Saludos,<br>El equipo de StyleSync</p>
</div>`,
		clientName,
		serviceName,
		barberName,
		slot.Start.UTC().Format(displayTimeLayout),
		FormatAmount(priceMinor),
	)

	return subject, html
}

// ReminderEmail builds the 24h/2h reminder message.
func ReminderEmail(kind domain.ReminderKind, slotStart time.Time) (subject string, html string) {
	when := "En breve"
	if kind == domain.Reminder24h {
		when = "Mañana"
	}

	subject = "Recordatorio de Turno: " + when
	html = fmt.Sprintf(
		"<p>Hola, tu turno es el %s. Te esperamos!</p>",
		slotStart.UTC().Format(displayTimeLayout),
	)
	return subject, html
}

// FormatAmount renders minor currency units, e.g. 150000 -> "$1500.00".
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s$%d.%02d", sign, minor/100, minor%100)
}
