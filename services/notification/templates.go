package notification

import (
	"fmt"

	"lagocruise/models"
)

const dateLayout = "Mon, 2 Jan 2006 15:04"

// ConfirmationEmail is queued once a payment is verified.
func ConfirmationEmail(to string, booking *models.Booking, boatName string) Message {
	return Message{
		To:      to,
		Subject: "Booking Confirmed - Payment Received",
		HTML: fmt.Sprintf(
			`<h2>Your booking is confirmed!</h2>
<p>Payment for your trip on <strong>%s</strong> has been received.</p>
<p>From %s to %s.</p>
<p>Total paid: &#8358;%.2f</p>
<p>Reference: %s</p>`,
			boatName,
			booking.StartDate.Format(dateLayout),
			booking.EndDate.Format(dateLayout),
			booking.TotalPrice,
			booking.PaymentReference,
		),
	}
}

// CancellationEmail is queued after a refund has been processed.
func CancellationEmail(to string, booking *models.Booking, boatName string, refundAmount float64, refundPercentage int) Message {
	return Message{
		To:      to,
		Subject: "Booking Cancelled - Refund Processed",
		HTML: fmt.Sprintf(
			`<h2>Your booking has been cancelled</h2>
<p>Your trip on <strong>%s</strong> starting %s was cancelled.</p>
<p>You will receive a %d%% refund of &#8358;%.2f.</p>
<p>Reference: %s</p>`,
			boatName,
			booking.StartDate.Format(dateLayout),
			refundPercentage,
			refundAmount,
			booking.PaymentReference,
		),
	}
}

// AbandonedEmail tells a user their unpaid reservation expired.
func AbandonedEmail(to string, booking *models.Booking) Message {
	return Message{
		To:      to,
		Subject: "Your Booking Payment Expired",
		HTML: fmt.Sprintf(
			`<h2>Your booking payment expired</h2>
<p>We did not receive payment for your reservation starting %s, so the slot has been released.</p>
<p>You can make a new booking at any time.</p>`,
			booking.StartDate.Format(dateLayout),
		),
	}
}

// CompletedEmail thanks a user after their trip ends.
func CompletedEmail(to string, booking *models.Booking) Message {
	return Message{
		To:      to,
		Subject: "Thank You - Booking Completed Successfully!",
		HTML: fmt.Sprintf(
			`<h2>Thanks for cruising with us!</h2>
<p>Your trip that ended %s is now complete. We hope to see you on board again.</p>`,
			booking.EndDate.Format(dateLayout),
		),
	}
}
