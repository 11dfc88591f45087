package email

import (
	"fmt"
	"html"
	"time"
)

// WelcomeMessage se envia al completar el registro.
func WelcomeMessage(to, username string) Message {
	body := fmt.Sprintf(`<h2>Hello %s,</h2>
<p>We're thrilled to have you on board!</p>
<p>Your account has been successfully created with the email: %s</p>
<p>Here's what you can do next:</p>
<ul>
  <li>Explore your dashboard</li>
  <li>Update your profile</li>
  <li>Get started with our features</li>
</ul>
<p>If you have any questions or need assistance, our support team is just a click away.</p>
`, html.EscapeString(username), html.EscapeString(to))
	return Message{
		To:      to,
		Subject: "Account Successfully Created",
		HTML:    body,
	}
}

func VerificationOTPMessage(to, username, code string, ttl time.Duration) Message {
	body := fmt.Sprintf(`Hello %s,

To verify your account (%s), please use the OTP below:

Your OTP for account verification is: %s
This OTP is valid for %d minutes. Do not share it with anyone.
`, username, to, code, int(ttl.Minutes()))
	return Message{
		To:      to,
		Subject: "Your Verification OTP",
		Text:    body,
	}
}

func ResetOTPMessage(to, code string, ttl time.Duration) Message {
	return Message{
		To:      to,
		Subject: "Password Reset OTP",
		Text: fmt.Sprintf(
			"Your OTP for reset password is %s. It is valid for %d minutes. Do not share it with anyone.\n",
			code,
			int(ttl.Minutes()),
		),
	}
}
