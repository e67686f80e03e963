package email

import (
	"fmt"
	"strings"
)

// OrderItem is one line of an order as rendered in a confirmation email.
// Prices arrive preformatted with their currency so the template stays
// ignorant of money arithmetic.
type OrderItem struct {
	Name      string
	Quantity  int
	UnitPrice string
	Subtotal  string
}

// BuildOrderConfirmationBody renders the HTML body for an order confirmation.
func BuildOrderConfirmationBody(orderID, total string, items []OrderItem) string {
	var itemsHTML strings.Builder
	for _, item := range items {
		itemsHTML.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 12px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s</td>
			</tr>`,
			item.Name, item.Quantity, item.UnitPrice, item.Subtotal))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 30px; border-radius: 10px 10px 0 0;">
		<h1 style="color: white; margin: 0; font-size: 24px;">Thank you for your order</h1>
	</div>

	<div style="background: #fff; padding: 30px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<p style="margin-top: 0;">We have received your order and will let you know once it ships.</p>

		<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
			<p style="margin: 0; font-size: 14px; color: #666;">Order number</p>
			<p style="margin: 5px 0 0 0; font-size: 18px; font-weight: bold; font-family: monospace;">%s</p>
		</div>

		<h2 style="font-size: 18px; border-bottom: 2px solid #667eea; padding-bottom: 10px;">Order details</h2>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background: #f8f9fa;">
					<th style="padding: 12px; text-align: left; font-weight: 600;">Item</th>
					<th style="padding: 12px; text-align: center; font-weight: 600;">Qty</th>
					<th style="padding: 12px; text-align: right; font-weight: 600;">Unit price</th>
					<th style="padding: 12px; text-align: right; font-weight: 600;">Subtotal</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
		</table>

		<div style="text-align: right; padding: 20px; background: #f8f9fa; border-radius: 5px;">
			<span style="font-size: 14px; color: #666;">Total</span>
			<span style="font-size: 24px; font-weight: bold; color: #667eea; margin-left: 10px;">%s</span>
		</div>

		<hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">

		<p style="font-size: 12px; color: #999; margin-bottom: 0;">
			This is an automated message. If you have any questions, please contact support.
		</p>
	</div>
</body>
</html>`, orderID, itemsHTML.String(), total)
}

// BuildShipmentNoticeBody renders the HTML body for a shipment notice.
func BuildShipmentNoticeBody(orderID, trackingNumber string) string {
	tracking := ""
	if trackingNumber != "" {
		tracking = fmt.Sprintf(`
		<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
			<p style="margin: 0; font-size: 14px; color: #666;">Tracking number</p>
			<p style="margin: 5px 0 0 0; font-size: 18px; font-weight: bold; font-family: monospace;">%s</p>
		</div>`, trackingNumber)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 30px; border-radius: 10px 10px 0 0;">
		<h1 style="color: white; margin: 0; font-size: 24px;">Your order is on its way</h1>
	</div>

	<div style="background: #fff; padding: 30px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<p style="margin-top: 0;">Order <strong style="font-family: monospace;">%s</strong> has shipped.</p>
		%s
		<p style="font-size: 12px; color: #999; margin-bottom: 0;">
			This is an automated message. If you have any questions, please contact support.
		</p>
	</div>
</body>
</html>`, orderID, tracking)
}
