package template

import "fmt"

func OTPTemplate(username, otp string) string {
	template := fmt.Sprintf(`
		<html>
        <body>
            <h2>Password Reset Request</h2>
            <p>Hello %s,</p>
            <p>Your one-time password is:</p>
            <h1 style="letter-spacing: 4px;">%s</h1>
            <p>This code expires in 10 minutes. If you did not request a
            password reset, you can safely ignore this email.</p>
            <br>
            <p>Regards,<br>The AgriSoil Team</p>
        </body>
        </html>
		`, username, otp)
	return template
}

func OrderConfirmationTemplate(username, orderID string, total float64) string {
	template := fmt.Sprintf(`
		<html>
        <body>
            <h2>Order Confirmed</h2>
            <p>Hello %s,</p>
            <p>Your order <b>%s</b> has been confirmed.</p>
            <p>Total paid: Rs. %.2f</p>
            <br>
            <p>Regards,<br>The AgriSoil Team</p>
        </body>
        </html>
		`, username, orderID, total)
	return template
}
