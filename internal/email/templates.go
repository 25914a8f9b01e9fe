package email

import "html/template"

// OTP mail bodies. The reset template promises a 15 minute window and the
// verify template 24 hours; those figures must stay in sync with the TTLs
// enforced in the auth handlers.

type otpTemplateData struct {
	Email string
	Otp   string
}

var verifyOtpTemplate = template.Must(template.New("verify-otp").Parse(`<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <title>Verify Your Account</title>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <style type="text/css">
    body { margin: 0; padding: 0; background: #101820; font-family: 'Open Sans', Helvetica, Arial, sans-serif; color: #e2e8f0; }
    .container { width: 100%; max-width: 600px; background-color: #1a2b34; margin: 50px auto; border-radius: 8px; overflow: hidden; }
    .header { background: linear-gradient(90deg, #0f766e, #059669); padding: 20px; text-align: center; color: #ffffff; font-size: 22px; font-weight: bold; }
    .content { padding: 30px 40px; }
    .content p { font-size: 15px; line-height: 1.6; color: #e2e8f0; margin: 0 0 16px; }
    .highlight { color: #38bdf8; }
    .otp-box { display: inline-block; background: #059669; color: #ffffff; padding: 12px 24px; font-size: 18px; letter-spacing: 4px; font-weight: bold; border-radius: 6px; margin: 20px 0; }
    .footer { padding: 20px 40px; font-size: 12px; color: #94a3b8; text-align: center; }
  </style>
</head>
<body>
  <table class="container" role="presentation" width="100%">
    <tr><td class="header">Verify Your Account</td></tr>
    <tr><td class="content">
      <p>You are one step away from verifying the account for: <span class="highlight">{{.Email}}</span></p>
      <p>Use the code below to verify your account.</p>
      <p style="text-align: center;"><span class="otp-box">{{.Otp}}</span></p>
      <p>This code is valid for 24 hours.</p>
    </td></tr>
    <tr><td class="footer">If you did not create this account, you can safely ignore this email.</td></tr>
  </table>
</body>
</html>`))

var resetOtpTemplate = template.Must(template.New("reset-otp").Parse(`<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <title>Password Reset</title>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <style type="text/css">
    body { margin: 0; padding: 0; background: #101820; font-family: 'Open Sans', Helvetica, Arial, sans-serif; color: #e2e8f0; }
    .container { width: 100%; max-width: 600px; background-color: #1a2b34; margin: 50px auto; border-radius: 8px; overflow: hidden; }
    .header { background: linear-gradient(90deg, #0f766e, #059669); padding: 20px; text-align: center; color: #ffffff; font-size: 22px; font-weight: bold; }
    .content { padding: 30px 40px; }
    .content p { font-size: 15px; line-height: 1.6; color: #e2e8f0; margin: 0 0 16px; }
    .highlight { color: #38bdf8; }
    .otp-box { display: inline-block; background: #059669; color: #ffffff; padding: 12px 24px; font-size: 18px; letter-spacing: 4px; font-weight: bold; border-radius: 6px; margin: 20px 0; }
    .footer { padding: 20px 40px; font-size: 12px; color: #94a3b8; text-align: center; }
  </style>
</head>
<body>
  <table class="container" role="presentation" width="100%">
    <tr><td class="header">Password Reset</td></tr>
    <tr><td class="content">
      <p>We received a password reset request for your account: <span class="highlight">{{.Email}}</span></p>
      <p>Use the code below to reset your password.</p>
      <p style="text-align: center;"><span class="otp-box">{{.Otp}}</span></p>
      <p>The password reset code is only valid for the next 15 minutes.</p>
    </td></tr>
    <tr><td class="footer">If you did not request a password reset, you can safely ignore this email.</td></tr>
  </table>
</body>
</html>`))
